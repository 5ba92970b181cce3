package fu

import (
	"testing"

	"gotest.tools/assert"
)

func Test_Mean(t *testing.T) {
	assert.Equal(t, Mean([]float32{1, 2, 3}), float32(2))
	assert.Equal(t, Mean(nil), float32(0))
}

func Test_Nnz(t *testing.T) {
	assert.Equal(t, Nnz([]float32{0, 1, 0, 0.5}), 2)
	assert.Equal(t, Nnz(nil), 0)
}

func Test_Flatnr(t *testing.T) {
	r := Flatnr([][]float32{{1, 2}, {3}, {}, {4, 5}})
	assert.DeepEqual(t, r, []float32{1, 2, 3, 4, 5})
}
