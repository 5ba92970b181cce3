package store

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"go-ml.dev/pkg/molnet/dataset"
	"go-ml.dev/pkg/molnet/feat"
	"go-ml.dev/pkg/molnet/trans"
	"gotest.tools/assert"
)

func testSplits() dataset.Splits {
	mk := func(ids ...string) *dataset.Dataset {
		d := dataset.New([]string{"exp"}, 2)
		for i, id := range ids {
			d.Append(dataset.Example{
				ID:       id,
				Features: feat.Fingerprint{0, 1, 0, 1},
				Labels:   []float64{float64(i) * 1.5},
			})
		}
		return d
	}
	return dataset.Splits{
		Train: mk("CCO", "CCN", "CCC", "CCCC", "CC(C)C"),
		Valid: mk("c1ccccc1"),
		Test:  mk("C1CCCCC1"),
	}
}

func testStates() []trans.State {
	return []trans.State{{Mean: []float64{3.0}, Std: []float64{1.25}, MoveMean: true}}
}

func Test_RoundTrip(t *testing.T) {
	root, err := ioutil.TempDir("", "molnet-store-")
	assert.NilError(t, err)
	defer os.RemoveAll(root)
	dir := filepath.Join(root, "lipo", "ECFP", "index")

	sp := testSplits()
	assert.NilError(t, Save(dir, sp, testStates()))

	found, got, states := TryLoad(dir)
	assert.Assert(t, found)
	assert.Equal(t, got.Train.Len(), 5)
	assert.Equal(t, got.Train.NumShards(), 3)
	assert.Equal(t, got.Valid.Len(), 1)
	assert.Equal(t, got.Test.Len(), 1)
	assert.DeepEqual(t, got.Train.Tasks(), []string{"exp"})
	for i := 0; i < sp.Train.Len(); i++ {
		assert.Equal(t, got.Train.At(i).ID, sp.Train.At(i).ID)
		assert.Equal(t, got.Train.At(i).Labels[0], sp.Train.At(i).Labels[0])
	}
	assert.DeepEqual(t, got.Train.At(0).Features, sp.Train.At(0).Features)
	assert.DeepEqual(t, states, testStates())

	// the staging directory is gone after a successful save
	_, err = os.Stat(dir + ".tmp")
	assert.Assert(t, os.IsNotExist(err))
}

func Test_SaveReplacesEntry(t *testing.T) {
	root, err := ioutil.TempDir("", "molnet-store-")
	assert.NilError(t, err)
	defer os.RemoveAll(root)
	dir := filepath.Join(root, "entry")

	assert.NilError(t, Save(dir, testSplits(), testStates()))
	next := testStates()
	next[0].Mean[0] = -7
	assert.NilError(t, Save(dir, testSplits(), next))

	found, _, states := TryLoad(dir)
	assert.Assert(t, found)
	assert.Equal(t, states[0].Mean[0], -7.0)
}

func Test_MissOnAbsentEntry(t *testing.T) {
	found, _, _ := TryLoad(filepath.Join(os.TempDir(), "molnet-no-such-entry"))
	assert.Assert(t, !found)
}

func Test_MissOnDamagedEntry(t *testing.T) {
	root, err := ioutil.TempDir("", "molnet-store-")
	assert.NilError(t, err)
	defer os.RemoveAll(root)
	dir := filepath.Join(root, "entry")
	assert.NilError(t, Save(dir, testSplits(), testStates()))

	// garbage manifest
	assert.NilError(t, ioutil.WriteFile(filepath.Join(dir, "manifest.db"), []byte("garbage"), 0644))
	found, _, _ := TryLoad(dir)
	assert.Assert(t, !found)

	// missing shard file
	assert.NilError(t, Save(dir, testSplits(), testStates()))
	assert.NilError(t, os.Remove(filepath.Join(dir, "train-00001.gob.xz")))
	found, _, _ = TryLoad(dir)
	assert.Assert(t, !found)
}
