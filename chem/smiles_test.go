package chem

import (
	"gotest.tools/assert"
	"testing"
)

func Test_ParseChain(t *testing.T) {
	m, err := ParseSMILES("CCO")
	assert.NilError(t, err)
	assert.Equal(t, m.NumAtoms(), 3)
	assert.Equal(t, len(m.Bonds), 2)
	assert.Equal(t, m.Atoms[0].Symbol, "C")
	assert.Equal(t, m.Atoms[2].Symbol, "O")
	assert.Equal(t, m.Degree(1), 2)
}

func Test_ParseBranch(t *testing.T) {
	m, err := ParseSMILES("CC(C)C")
	assert.NilError(t, err)
	assert.Equal(t, m.NumAtoms(), 4)
	assert.Equal(t, m.Degree(1), 3)
	assert.Equal(t, m.Degree(0), 1)
}

func Test_ParseAromaticRing(t *testing.T) {
	m, err := ParseSMILES("c1ccccc1")
	assert.NilError(t, err)
	assert.Equal(t, m.NumAtoms(), 6)
	assert.Equal(t, len(m.Bonds), 6)
	for i := 0; i < 6; i++ {
		assert.Assert(t, m.Atoms[i].Aromatic)
		assert.Equal(t, m.Degree(i), 2)
	}
	for _, b := range m.Bonds {
		assert.Assert(t, b.Aromatic)
	}
}

func Test_ParseDoubleAndTripleBonds(t *testing.T) {
	m, err := ParseSMILES("C=CC#N")
	assert.NilError(t, err)
	assert.Equal(t, m.Bonds[0].Order, 2)
	assert.Equal(t, m.Bonds[1].Order, 1)
	assert.Equal(t, m.Bonds[2].Order, 3)
}

func Test_ParseBracketAtoms(t *testing.T) {
	m, err := ParseSMILES("[NH4+]")
	assert.NilError(t, err)
	assert.Equal(t, m.NumAtoms(), 1)
	assert.Equal(t, m.Atoms[0].Symbol, "N")
	assert.Equal(t, m.Atoms[0].Hydrogens, 4)
	assert.Equal(t, m.Atoms[0].Charge, 1)

	m, err = ParseSMILES("C[C@H](N)O")
	assert.NilError(t, err)
	assert.Equal(t, m.NumAtoms(), 4)
	assert.Equal(t, m.Atoms[1].Hydrogens, 1)

	m, err = ParseSMILES("[O-]C(=O)C")
	assert.NilError(t, err)
	assert.Equal(t, m.Atoms[0].Charge, -1)
}

func Test_ParseTwoLetterAtoms(t *testing.T) {
	m, err := ParseSMILES("ClCBr")
	assert.NilError(t, err)
	assert.Equal(t, m.NumAtoms(), 3)
	assert.Equal(t, m.Atoms[0].Symbol, "Cl")
	assert.Equal(t, m.Atoms[2].Symbol, "Br")
}

func Test_ParseDisconnected(t *testing.T) {
	m, err := ParseSMILES("CC.O")
	assert.NilError(t, err)
	assert.Equal(t, m.NumAtoms(), 3)
	assert.Equal(t, len(m.Bonds), 1)
}

func Test_ParseErrors(t *testing.T) {
	for _, s := range []string{"", "C(", "C)C", "C1CC", "Xx", "[", "[C", "1CC1"} {
		_, err := ParseSMILES(s)
		assert.Assert(t, err != nil, "expected failure for %q", s)
		_, ok := err.(*ParseError)
		assert.Assert(t, ok, "expected *ParseError for %q, got %T", s, err)
	}
}

func Test_RingMask(t *testing.T) {
	m, err := ParseSMILES("CC1CC1")
	assert.NilError(t, err)
	mask := m.RingMask()
	assert.Assert(t, !mask[0])
	assert.Assert(t, mask[1] && mask[2] && mask[3])

	m, err = ParseSMILES("CCCC")
	assert.NilError(t, err)
	for _, in := range m.RingMask() {
		assert.Assert(t, !in)
	}
}
