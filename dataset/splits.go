package dataset

/*
Splits is the result of partitioning a dataset into train, validation and
test subsets. Valid and Test are nil when no split was requested; a nil
subset means absent, which is distinct from an empty one.
*/
type Splits struct {
	Train *Dataset
	Valid *Dataset
	Test  *Dataset
}
