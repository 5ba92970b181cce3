package chem

import (
	"fmt"
)

/*
ParseError reports a malformed SMILES string
*/
type ParseError struct {
	SMILES string
	Pos    int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid SMILES %q at %d: %s", e.SMILES, e.Pos, e.Msg)
}

// organic subset atoms readable without brackets
var organicAtoms = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true,
	"S": true, "F": true, "Cl": true, "Br": true, "I": true,
}

// elements with two-letter symbols accepted inside brackets
var twoLetterAtoms = map[string]bool{
	"Cl": true, "Br": true, "Si": true, "Se": true, "As": true,
	"Na": true, "Ca": true, "Li": true, "Mg": true, "Al": true,
	"Zn": true, "Fe": true, "Cu": true, "Mn": true, "Co": true,
	"Ni": true, "Sn": true, "Te": true, "Pb": true, "Ag": true,
	"Au": true, "Hg": true, "Cd": true, "Cr": true, "Pt": true,
	"Pd": true, "Ti": true, "Ba": true, "Sr": true, "Bi": true,
	"Sb": true, "Ge": true, "Ga": true, "In": true, "Tl": true,
	"Zr": true, "Mo": true, "Ru": true, "Rh": true, "Ir": true,
	"Os": true, "Re": true, "W": true, "V": true, "K": true,
	"Be": true, "He": true, "Ne": true, "Ar": true, "Kr": true, "Xe": true,
}

type ringRef struct {
	atom  int
	order int
}

/*
ParseSMILES reads a SMILES string into a molecular graph. The reader covers
the organic subset, bracket atoms with charge and hydrogen counts, branches,
ring closures (single digit and %nn) and aromatic notation; stereo markers
are accepted and ignored. Anything else yields a *ParseError.
*/
func ParseSMILES(s string) (*Molecule, error) {
	if s == "" {
		return nil, &ParseError{SMILES: s, Pos: 0, Msg: "empty input"}
	}
	m := &Molecule{}
	prev := -1      // atom awaiting the next bond
	pending := 0    // explicit bond before the next atom, 0 = default, 4 = aromatic
	var stack []int // open branches
	rings := map[int]ringRef{}

	bond := func(a, b, order int) {
		aromatic := order == 4 ||
			(order == 0 && m.Atoms[a].Aromatic && m.Atoms[b].Aromatic)
		if order == 0 || order == 4 {
			order = 1
		}
		m.addBond(Bond{A: a, B: b, Order: order, Aromatic: aromatic})
	}

	atom := func(a Atom) {
		i := m.addAtom(a)
		if prev >= 0 {
			bond(prev, i, pending)
		}
		prev = i
		pending = 0
	}

	closure := func(n, pos int) error {
		if prev < 0 {
			return &ParseError{SMILES: s, Pos: pos, Msg: "ring closure before any atom"}
		}
		if r, ok := rings[n]; ok {
			delete(rings, n)
			order := pending
			if order == 0 {
				order = r.order
			}
			if r.atom == prev {
				return &ParseError{SMILES: s, Pos: pos, Msg: "ring bond to self"}
			}
			bond(r.atom, prev, order)
		} else {
			rings[n] = ringRef{atom: prev, order: pending}
		}
		pending = 0
		return nil
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '(':
			if prev < 0 {
				return nil, &ParseError{SMILES: s, Pos: i, Msg: "branch before any atom"}
			}
			stack = append(stack, prev)
			i++
		case c == ')':
			if len(stack) == 0 {
				return nil, &ParseError{SMILES: s, Pos: i, Msg: "unmatched ')'"}
			}
			prev = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			i++
		case c == '-' || c == '/' || c == '\\':
			pending = 1
			i++
		case c == '=':
			pending = 2
			i++
		case c == '#':
			pending = 3
			i++
		case c == ':':
			pending = 4
			i++
		case c == '.':
			prev = -1
			pending = 0
			i++
		case c >= '0' && c <= '9':
			if err := closure(int(c-'0'), i); err != nil {
				return nil, err
			}
			i++
		case c == '%':
			if i+2 >= len(s) || !isDigit(s[i+1]) || !isDigit(s[i+2]) {
				return nil, &ParseError{SMILES: s, Pos: i, Msg: "bad %nn ring closure"}
			}
			if err := closure(int(s[i+1]-'0')*10+int(s[i+2]-'0'), i); err != nil {
				return nil, err
			}
			i += 3
		case c == '[':
			a, next, err := parseBracket(s, i)
			if err != nil {
				return nil, err
			}
			atom(a)
			i = next
		default:
			a, next, err := parseOrganic(s, i)
			if err != nil {
				return nil, err
			}
			atom(a)
			i = next
		}
	}
	if len(stack) != 0 {
		return nil, &ParseError{SMILES: s, Pos: len(s), Msg: "unmatched '('"}
	}
	if len(rings) != 0 {
		return nil, &ParseError{SMILES: s, Pos: len(s), Msg: "unclosed ring bond"}
	}
	if len(m.Atoms) == 0 {
		return nil, &ParseError{SMILES: s, Pos: 0, Msg: "no atoms"}
	}
	return m, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func parseOrganic(s string, i int) (Atom, int, error) {
	c := s[i]
	if isUpper(c) {
		if i+1 < len(s) && isLower(s[i+1]) && organicAtoms[s[i:i+2]] {
			return Atom{Symbol: s[i : i+2]}, i + 2, nil
		}
		if organicAtoms[string(c)] {
			return Atom{Symbol: string(c)}, i + 1, nil
		}
		return Atom{}, i, &ParseError{SMILES: s, Pos: i, Msg: "unknown atom symbol"}
	}
	switch c {
	case 'b', 'c', 'n', 'o', 'p', 's':
		return Atom{Symbol: string(c - 'a' + 'A'), Aromatic: true}, i + 1, nil
	}
	return Atom{}, i, &ParseError{SMILES: s, Pos: i, Msg: "unexpected character"}
}

func parseBracket(s string, start int) (Atom, int, error) {
	i := start + 1
	for i < len(s) && isDigit(s[i]) { // isotope, ignored
		i++
	}
	if i >= len(s) {
		return Atom{}, i, &ParseError{SMILES: s, Pos: start, Msg: "unterminated bracket atom"}
	}
	var a Atom
	switch {
	case s[i] == '*':
		a.Symbol = "*"
		i++
	case isLower(s[i]):
		a.Symbol = string(s[i] - 'a' + 'A')
		a.Aromatic = true
		i++
	case isUpper(s[i]):
		if i+1 < len(s) && isLower(s[i+1]) && twoLetterAtoms[s[i:i+2]] {
			a.Symbol = s[i : i+2]
			i += 2
		} else {
			a.Symbol = string(s[i])
			i++
		}
	default:
		return Atom{}, i, &ParseError{SMILES: s, Pos: i, Msg: "bad bracket atom symbol"}
	}
	for i < len(s) && s[i] != ']' {
		switch s[i] {
		case '@': // chirality, ignored
			i++
		case 'H':
			a.Hydrogens = 1
			i++
			if i < len(s) && isDigit(s[i]) {
				a.Hydrogens = int(s[i] - '0')
				i++
			}
		case '+', '-':
			sign := 1
			if s[i] == '-' {
				sign = -1
			}
			n := 0
			for i < len(s) && (s[i] == '+' || s[i] == '-') {
				n++
				i++
			}
			if i < len(s) && isDigit(s[i]) {
				n = int(s[i] - '0')
				i++
			}
			a.Charge = sign * n
		case ':': // atom map, ignored
			i++
			for i < len(s) && isDigit(s[i]) {
				i++
			}
		default:
			return Atom{}, i, &ParseError{SMILES: s, Pos: i, Msg: "bad bracket atom"}
		}
	}
	if i >= len(s) {
		return Atom{}, i, &ParseError{SMILES: s, Pos: start, Msg: "unterminated bracket atom"}
	}
	return a, i + 1, nil
}
