package feat

import (
	"encoding/binary"
	"hash/fnv"
	"sort"

	"go-ml.dev/pkg/molnet/chem"
)

const (
	DefaultFingerprintSize = 1024
	DefaultRadius          = 2
)

/*
Circular is a hashed circular (Morgan/ECFP style) fingerprint featurizer.
Every atom environment up to Radius bonds away is hashed into a bit of a
Size-wide binary vector.
*/
type Circular struct {
	Size   int // vector length, DefaultFingerprintSize when 0
	Radius int // environment radius, DefaultRadius when 0
}

func (c Circular) Name() string { return "ECFP" }

func (c Circular) Featurize(smiles string, mol *chem.Molecule) (interface{}, error) {
	size := c.Size
	if size == 0 {
		size = DefaultFingerprintSize
	}
	radius := c.Radius
	if radius == 0 {
		radius = DefaultRadius
	}
	fp := make(Fingerprint, size)
	n := mol.NumAtoms()
	ring := mol.RingMask()
	cur := make([]uint64, n)
	for i := 0; i < n; i++ {
		arom, inRing := uint64(0), uint64(0)
		if mol.Atoms[i].Aromatic {
			arom = 1
		}
		if ring[i] {
			inRing = 1
		}
		cur[i] = envHash(
			symHash(mol.Atoms[i].Symbol),
			uint64(mol.Degree(i)),
			uint64(int64(mol.Atoms[i].Charge)+16),
			uint64(mol.Atoms[i].Hydrogens),
			arom, inRing)
		fp[cur[i]%uint64(size)] = 1
	}
	next := make([]uint64, n)
	for r := 0; r < radius; r++ {
		for i := 0; i < n; i++ {
			var env []uint64
			for _, j := range mol.Neighbors(i) {
				b, _ := mol.BondBetween(i, j)
				order := uint64(b.Order)
				if b.Aromatic {
					order = 4
				}
				env = append(env, envHash(order, cur[j]))
			}
			sort.Slice(env, func(a, b int) bool { return env[a] < env[b] })
			next[i] = envHash(append([]uint64{cur[i]}, env...)...)
			fp[next[i]%uint64(size)] = 1
		}
		cur, next = next, cur
	}
	return fp, nil
}

func symHash(s string) uint64 {
	f := fnv.New64a()
	f.Write([]byte(s))
	return f.Sum64()
}

func envHash(parts ...uint64) uint64 {
	f := fnv.New64a()
	var b [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(b[:], p)
		f.Write(b[:])
	}
	return f.Sum64()
}
