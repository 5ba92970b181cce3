package feat

import (
	"go-ml.dev/pkg/molnet/chem"
)

/*
GraphConv featurizes a molecule into per-atom feature rows plus the graph
adjacency, the input shape of graph convolution models
*/
type GraphConv struct{}

func (GraphConv) Name() string { return "GraphConv" }

func (GraphConv) Featurize(smiles string, mol *chem.Molecule) (interface{}, error) {
	n := mol.NumAtoms()
	ring := mol.RingMask()
	cm := ConvMol{
		AtomFeatures: make([][]float32, n),
		Adjacency:    make([][]int32, n),
	}
	for i := 0; i < n; i++ {
		cm.AtomFeatures[i] = atomRow(mol, i, ring)
		nb := mol.Neighbors(i)
		adj := make([]int32, len(nb))
		for k, j := range nb {
			adj[k] = int32(j)
		}
		cm.Adjacency[i] = adj
	}
	return cm, nil
}
