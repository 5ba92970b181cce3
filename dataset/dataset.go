package dataset

/*
Example is one featurized record: a source structure descriptor, the
strategy-specific feature payload and one label per task.

The Features payload is an opaque value produced by a featurizer; concrete
payload types are gob-registered by the feat package so examples survive
a round trip through the disk cache.
*/
type Example struct {
	ID       string
	Features interface{}
	Labels   []float64
}

/*
Dataset is an ordered collection of featurized examples kept in fixed-size
shards to bound the memory profile of loading and persisting large files.
*/
type Dataset struct {
	tasks     []string
	shardSize int
	shards    [][]Example
	n         int
}

/*
New creates an empty dataset for the given task list and shard capacity
*/
func New(tasks []string, shardSize int) *Dataset {
	if shardSize < 1 {
		shardSize = 1
	}
	return &Dataset{tasks: tasks, shardSize: shardSize}
}

/*
Tasks returns the ordered target-variable names
*/
func (d *Dataset) Tasks() []string {
	return d.tasks
}

/*
Len returns the number of examples over all shards
*/
func (d *Dataset) Len() int {
	return d.n
}

/*
ShardSize returns the shard capacity the dataset was created with
*/
func (d *Dataset) ShardSize() int {
	return d.shardSize
}

/*
NumShards returns the count of allocated shards
*/
func (d *Dataset) NumShards() int {
	return len(d.shards)
}

/*
Shard returns the i-th shard; the slice must not be mutated by the caller
*/
func (d *Dataset) Shard(i int) []Example {
	return d.shards[i]
}

/*
Append adds an example to the last shard, growing a new shard when full
*/
func (d *Dataset) Append(ex Example) {
	k := len(d.shards)
	if k == 0 || len(d.shards[k-1]) == d.shardSize {
		d.shards = append(d.shards, make([]Example, 0, d.shardSize))
		k++
	}
	d.shards[k-1] = append(d.shards[k-1], ex)
	d.n++
}

/*
At returns the i-th example in dataset order
*/
func (d *Dataset) At(i int) Example {
	return d.shards[i/d.shardSize][i%d.shardSize]
}

/*
Select extracts the examples at the given positions, in the given order,
into a new dataset sharing the task list and shard capacity
*/
func (d *Dataset) Select(idx []int) *Dataset {
	r := New(d.tasks, d.shardSize)
	for _, i := range idx {
		r.Append(d.At(i))
	}
	return r
}

/*
LabelColumn copies out the labels of one task over all examples
*/
func (d *Dataset) LabelColumn(task int) []float64 {
	col := make([]float64, 0, d.n)
	for _, s := range d.shards {
		for _, ex := range s {
			col = append(col, ex.Labels[task])
		}
	}
	return col
}

/*
WithLabels returns a new dataset with the label columns replaced; cols is
indexed [task][example]. Features and IDs are shared, labels are fresh
slices, so the receiver stays untouched.
*/
func (d *Dataset) WithLabels(cols [][]float64) *Dataset {
	r := New(d.tasks, d.shardSize)
	i := 0
	for _, s := range d.shards {
		for _, ex := range s {
			labels := make([]float64, len(cols))
			for t := range cols {
				labels[t] = cols[t][i]
			}
			r.Append(Example{ID: ex.ID, Features: ex.Features, Labels: labels})
			i++
		}
	}
	return r
}
