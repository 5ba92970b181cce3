package splits

import (
	"fmt"
	"testing"

	"go-ml.dev/pkg/molnet/dataset"
	"gotest.tools/assert"
)

var testSmiles = []string{
	"c1ccccc1", "Cc1ccccc1", "CCc1ccccc1", "Oc1ccccc1", "Nc1ccccc1", "Clc1ccccc1",
	"C1CCCCC1", "CC1CCCCC1", "OC1CCCCC1", "NC1CCCCC1",
	"CCO", "CCN", "CCC", "CC(C)O", "CCCC", "CC(C)C", "CCOC", "CCCO", "CC(C)N", "CCCN",
}

func testDataset(t *testing.T) *dataset.Dataset {
	d := dataset.New([]string{"exp"}, 6)
	for i, s := range testSmiles {
		d.Append(dataset.Example{ID: s, Labels: []float64{float64(i) / 2}})
	}
	return d
}

func checkPartition(t *testing.T, d, train, valid, test *dataset.Dataset) {
	t.Helper()
	assert.Equal(t, train.Len()+valid.Len()+test.Len(), d.Len())
	seen := map[string]string{}
	for name, s := range map[string]*dataset.Dataset{"train": train, "valid": valid, "test": test} {
		for i := 0; i < s.Len(); i++ {
			id := s.At(i).ID
			prev, dup := seen[id]
			assert.Assert(t, !dup, "example %v in both %v and %v", id, prev, name)
			seen[id] = name
		}
	}
	for _, s := range testSmiles {
		_, ok := seen[s]
		assert.Assert(t, ok, "example %v lost by the split", s)
	}
}

func Test_IndexSplitter(t *testing.T) {
	d := testDataset(t)
	train, valid, test, err := IndexSplitter{}.TrainValidTest(d, DefaultFractions())
	assert.NilError(t, err)
	checkPartition(t, d, train, valid, test)
	assert.Equal(t, train.Len(), 16)
	assert.Equal(t, valid.Len(), 2)
	assert.Equal(t, test.Len(), 2)
	assert.Equal(t, train.At(0).ID, testSmiles[0])
	assert.Equal(t, test.At(1).ID, testSmiles[19])
}

func Test_RandomSplitter(t *testing.T) {
	d := testDataset(t)
	s := RandomSplitter{Seed: 42}
	train, valid, test, err := s.TrainValidTest(d, DefaultFractions())
	assert.NilError(t, err)
	checkPartition(t, d, train, valid, test)
	assert.Equal(t, train.Len(), 16)

	// same seed reproduces the same partition
	train2, _, _, err := s.TrainValidTest(d, DefaultFractions())
	assert.NilError(t, err)
	for i := 0; i < train.Len(); i++ {
		assert.Equal(t, train.At(i).ID, train2.At(i).ID)
	}
}

func Test_ScaffoldSplitter(t *testing.T) {
	d := testDataset(t)
	train, valid, test, err := ScaffoldSplitter{}.TrainValidTest(d, DefaultFractions())
	assert.NilError(t, err)
	checkPartition(t, d, train, valid, test)

	// compounds sharing a scaffold always land in the same subset
	subsetOf := map[string]int{}
	for k, s := range []*dataset.Dataset{train, valid, test} {
		for i := 0; i < s.Len(); i++ {
			subsetOf[s.At(i).ID] = k
		}
	}
	benzenes := testSmiles[0:6]
	hexanes := testSmiles[6:10]
	for _, s := range benzenes[1:] {
		assert.Equal(t, subsetOf[s], subsetOf[benzenes[0]], "benzene %v strayed", s)
	}
	for _, s := range hexanes[1:] {
		assert.Equal(t, subsetOf[s], subsetOf[hexanes[0]], "cyclohexane %v strayed", s)
	}
}

func Test_BadFractions(t *testing.T) {
	d := testDataset(t)
	bad := Fractions{Train: 0.5, Valid: 0.2, Test: 0.2}
	for _, s := range []Splitter{IndexSplitter{}, RandomSplitter{Seed: 1}, ScaffoldSplitter{}} {
		_, _, _, err := s.TrainValidTest(d, bad)
		assert.Assert(t, err != nil, fmt.Sprintf("splitter %v accepted bad fractions", s.Name()))
	}
}
