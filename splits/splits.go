/*
Package splits partitions featurized datasets into train/validation/test
subsets. Every strategy honors the same invariant: the three outputs are
pairwise disjoint and together cover the input exactly.
*/
package splits

import (
	"math"
	"math/rand"
	"time"

	"go-ml.dev/pkg/molnet/dataset"
	"go-ml.dev/pkg/zorros"
)

/*
Fractions is the requested relative size of each subset
*/
type Fractions struct {
	Train, Valid, Test float64
}

/*
DefaultFractions is the conventional 80/10/10 partition
*/
func DefaultFractions() Fractions {
	return Fractions{Train: 0.8, Valid: 0.1, Test: 0.1}
}

/*
Splitter partitions a dataset into train, validation and test subsets
*/
type Splitter interface {
	Name() string
	TrainValidTest(d *dataset.Dataset, f Fractions) (train, valid, test *dataset.Dataset, err error)
}

func checkFractions(f Fractions) error {
	if math.Abs(f.Train+f.Valid+f.Test-1) > 1e-9 {
		return zorros.Errorf("split fractions %v do not sum to 1", f)
	}
	return nil
}

func cutoffs(n int, f Fractions) (trainEnd, validEnd int) {
	trainEnd = int(f.Train * float64(n))
	validEnd = int((f.Train + f.Valid) * float64(n))
	return
}

func partition(d *dataset.Dataset, idx []int, f Fractions) (train, valid, test *dataset.Dataset) {
	a, b := cutoffs(len(idx), f)
	return d.Select(idx[:a]), d.Select(idx[a:b]), d.Select(idx[b:])
}

/*
IndexSplitter partitions by position: the leading examples train, then
validation, then test
*/
type IndexSplitter struct{}

func (IndexSplitter) Name() string { return "index" }

func (IndexSplitter) TrainValidTest(d *dataset.Dataset, f Fractions) (*dataset.Dataset, *dataset.Dataset, *dataset.Dataset, error) {
	if err := checkFractions(f); err != nil {
		return nil, nil, nil, err
	}
	idx := make([]int, d.Len())
	for i := range idx {
		idx[i] = i
	}
	train, valid, test := partition(d, idx, f)
	return train, valid, test, nil
}

/*
RandomSplitter partitions by a uniform permutation; a zero Seed means
time-seeded
*/
type RandomSplitter struct {
	Seed int64
}

func (RandomSplitter) Name() string { return "random" }

func (s RandomSplitter) TrainValidTest(d *dataset.Dataset, f Fractions) (*dataset.Dataset, *dataset.Dataset, *dataset.Dataset, error) {
	if err := checkFractions(f); err != nil {
		return nil, nil, nil, err
	}
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	idx := rand.New(rand.NewSource(seed)).Perm(d.Len())
	train, valid, test := partition(d, idx, f)
	return train, valid, test, nil
}
