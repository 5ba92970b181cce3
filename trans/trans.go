/*
Package trans normalizes regression labels. Statistics are fit once, on the
train subset only, and applied uniformly to every subset; Fit and Apply are
separate operations so that invariant holds by construction.
*/
package trans

import (
	"math"

	"go-ml.dev/pkg/molnet/dataset"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

/*
State holds normalization statistics, one mean and deviation per task
*/
type State struct {
	Mean     []float64
	Std      []float64
	MoveMean bool
}

/*
Normalization standardizes the label scale; with MoveMean the labels are
centered as well, without it only divided by the deviation
*/
type Normalization struct {
	MoveMean bool
}

/*
Fit computes label statistics from the given dataset
*/
func (n Normalization) Fit(d *dataset.Dataset) (State, error) {
	if d == nil || d.Len() == 0 {
		return State{}, zorros.Errorf("cannot fit normalization on an empty dataset")
	}
	tasks := len(d.Tasks())
	st := State{
		Mean:     make([]float64, tasks),
		Std:      make([]float64, tasks),
		MoveMean: n.MoveMean,
	}
	for t := 0; t < tasks; t++ {
		mean, std := stat.MeanStdDev(d.LabelColumn(t), nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		st.Mean[t] = mean
		st.Std[t] = std
	}
	return st, nil
}

/*
Apply returns a normalized copy of the dataset; the input stays untouched
*/
func Apply(d *dataset.Dataset, s State) *dataset.Dataset {
	cols := make([][]float64, len(s.Mean))
	for t := range cols {
		col := d.LabelColumn(t)
		if s.MoveMean {
			floats.AddConst(-s.Mean[t], col)
		}
		floats.Scale(1/s.Std[t], col)
		cols[t] = col
	}
	return d.WithLabels(cols)
}
