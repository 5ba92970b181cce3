package feat

import (
	"go-ml.dev/pkg/molnet/chem"
	"go-ml.dev/pkg/molnet/fu"
)

// graph distances beyond this are clipped
const maxPairDistance = 7

/*
Weave featurizes a molecule into per-atom feature rows plus a dense feature
row for every ordered atom pair: bond order, aromaticity, clipped graph
distance and a coarse summary of both atom environments.
*/
type Weave struct{}

func (Weave) Name() string { return "Weave" }

func (Weave) Featurize(smiles string, mol *chem.Molecule) (interface{}, error) {
	n := mol.NumAtoms()
	ring := mol.RingMask()
	wm := WeaveMol{
		NumAtoms:     n,
		AtomFeatures: make([][]float32, n),
		PairFeatures: make([][]float32, n*n),
	}
	for i := 0; i < n; i++ {
		wm.AtomFeatures[i] = atomRow(mol, i, ring)
	}
	for i := 0; i < n; i++ {
		dist := bfsDistances(mol, i)
		for j := 0; j < n; j++ {
			row := make([]float32, 8)
			if b, ok := mol.BondBetween(i, j); ok {
				row[0] = 1
				if b.Order >= 1 && b.Order <= 3 {
					row[b.Order] = 1
				}
				if b.Aromatic {
					row[4] = 1
				}
			}
			d := dist[j]
			if d < 0 || d > maxPairDistance {
				d = maxPairDistance
			}
			row[5] = float32(d) / maxPairDistance
			row[6] = fu.Mean(wm.AtomFeatures[i])
			row[7] = fu.Mean(wm.AtomFeatures[j])
			wm.PairFeatures[i*n+j] = row
		}
	}
	return wm, nil
}

func bfsDistances(m *chem.Molecule, from int) []int {
	dist := make([]int, m.NumAtoms())
	for i := range dist {
		dist[i] = -1
	}
	dist[from] = 0
	queue := []int{from}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, u := range m.Neighbors(v) {
			if dist[u] < 0 {
				dist[u] = dist[v] + 1
				queue = append(queue, u)
			}
		}
	}
	return dist
}
