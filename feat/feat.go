/*
Package feat converts raw molecular records into numeric feature payloads.

Featurizers are polymorphic strategies over the same contract; the payload
types they produce are gob-registered here so featurized examples survive a
round trip through the disk cache.
*/
package feat

import (
	"encoding/gob"

	"go-ml.dev/pkg/molnet/chem"
)

/*
Featurizer turns one parsed molecule into a feature payload
*/
type Featurizer interface {
	Name() string
	Featurize(smiles string, mol *chem.Molecule) (interface{}, error)
}

/*
Fingerprint is a fixed-size binary feature vector
*/
type Fingerprint []float32

/*
ConvMol is a graph representation: one feature row per atom plus the
adjacency lists of the molecular graph
*/
type ConvMol struct {
	AtomFeatures [][]float32
	Adjacency    [][]int32
}

/*
WeaveMol extends the graph representation with one feature row per ordered
atom pair
*/
type WeaveMol struct {
	NumAtoms     int
	AtomFeatures [][]float32
	PairFeatures [][]float32
}

/*
RawMol is the identity payload keeping the source descriptor as-is
*/
type RawMol struct {
	SMILES string
}

func init() {
	gob.Register(Fingerprint{})
	gob.Register(ConvMol{})
	gob.Register(WeaveMol{})
	gob.Register(RawMol{})
}

// atom symbols with an own one-hot slot; anything else maps to "other"
var atomSymbols = []string{"C", "N", "O", "S", "F", "P", "Cl", "Br", "I", "B"}

const maxDegree = 5

func atomRow(m *chem.Molecule, i int, ring []bool) []float32 {
	row := make([]float32, len(atomSymbols)+1+maxDegree+1+4)
	k := len(atomSymbols)
	for j, s := range atomSymbols {
		if m.Atoms[i].Symbol == s {
			k = j
			break
		}
	}
	row[k] = 1
	d := m.Degree(i)
	if d > maxDegree {
		d = maxDegree
	}
	row[len(atomSymbols)+1+d] = 1
	base := len(atomSymbols) + 1 + maxDegree + 1
	row[base] = float32(m.Atoms[i].Charge)
	if m.Atoms[i].Aromatic {
		row[base+1] = 1
	}
	if ring[i] {
		row[base+2] = 1
	}
	row[base+3] = float32(m.Atoms[i].Hydrogens)
	return row
}
