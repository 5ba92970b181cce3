package chem

/*
Atom is one heavy atom of a molecular graph
*/
type Atom struct {
	Symbol    string
	Aromatic  bool
	Charge    int
	Hydrogens int // explicit count from a bracket atom
}

/*
Bond connects the atoms at indices A and B
*/
type Bond struct {
	A, B     int
	Order    int
	Aromatic bool
}

/*
Molecule is a molecular graph parsed from a SMILES string
*/
type Molecule struct {
	Atoms []Atom
	Bonds []Bond

	adj      [][]int // neighbor atom indices
	adjBonds [][]int // incident bond indices, parallel to adj
}

func (m *Molecule) addAtom(a Atom) int {
	m.Atoms = append(m.Atoms, a)
	m.adj = append(m.adj, nil)
	m.adjBonds = append(m.adjBonds, nil)
	return len(m.Atoms) - 1
}

func (m *Molecule) addBond(b Bond) {
	i := len(m.Bonds)
	m.Bonds = append(m.Bonds, b)
	m.adj[b.A] = append(m.adj[b.A], b.B)
	m.adj[b.B] = append(m.adj[b.B], b.A)
	m.adjBonds[b.A] = append(m.adjBonds[b.A], i)
	m.adjBonds[b.B] = append(m.adjBonds[b.B], i)
}

/*
NumAtoms returns the heavy atom count
*/
func (m *Molecule) NumAtoms() int {
	return len(m.Atoms)
}

/*
Neighbors returns the atom indices bonded to atom i
*/
func (m *Molecule) Neighbors(i int) []int {
	return m.adj[i]
}

/*
Degree returns the heavy atom degree of atom i
*/
func (m *Molecule) Degree(i int) int {
	return len(m.adj[i])
}

/*
BondBetween returns the bond connecting atoms i and j if one exists
*/
func (m *Molecule) BondBetween(i, j int) (Bond, bool) {
	for k, u := range m.adj[i] {
		if u == j {
			return m.Bonds[m.adjBonds[i][k]], true
		}
	}
	return Bond{}, false
}

/*
RingMask reports for every atom whether it belongs to a cycle. A bond lies
on a cycle iff it is not a bridge of the molecular graph, so the mask falls
out of one bridge-finding DFS.
*/
func (m *Molecule) RingMask() []bool {
	n := len(m.Atoms)
	disc := make([]int, n)
	low := make([]int, n)
	for i := range disc {
		disc[i] = -1
	}
	ringBond := make([]bool, len(m.Bonds))
	timer := 0
	var dfs func(v, parentBond int)
	dfs = func(v, parentBond int) {
		disc[v] = timer
		low[v] = timer
		timer++
		for k, bi := range m.adjBonds[v] {
			if bi == parentBond {
				continue
			}
			u := m.adj[v][k]
			if disc[u] < 0 {
				dfs(u, bi)
				if low[u] < low[v] {
					low[v] = low[u]
				}
				if low[u] <= disc[v] {
					ringBond[bi] = true
				}
			} else {
				// back edge closes a cycle
				ringBond[bi] = true
				if disc[u] < low[v] {
					low[v] = disc[u]
				}
			}
		}
	}
	for v := 0; v < n; v++ {
		if disc[v] < 0 {
			dfs(v, -1)
		}
	}
	mask := make([]bool, n)
	for i, b := range m.Bonds {
		if ringBond[i] {
			mask[b.A] = true
			mask[b.B] = true
		}
	}
	return mask
}
