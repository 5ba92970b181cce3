package chem

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
)

/*
Scaffold returns a deterministic key of the molecule's ring-and-linker
framework. Side chains are pruned Bemis-Murcko style (iterative removal of
terminal atoms) and the remaining subgraph is hashed with a few rounds of
neighborhood refinement, so two molecules share a key exactly when their
frameworks are structurally alike. Molecules without rings yield "".
*/
func Scaffold(m *Molecule) string {
	n := len(m.Atoms)
	keep := make([]bool, n)
	deg := make([]int, n)
	var queue []int
	for i := 0; i < n; i++ {
		keep[i] = true
		deg[i] = m.Degree(i)
		if deg[i] <= 1 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		v := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if !keep[v] {
			continue
		}
		keep[v] = false
		for _, u := range m.adj[v] {
			if keep[u] {
				deg[u]--
				if deg[u] <= 1 {
					queue = append(queue, u)
				}
			}
		}
	}

	h := make([]uint64, n)
	kept := 0
	for i := 0; i < n; i++ {
		if keep[i] {
			kept++
			arom := uint64(0)
			if m.Atoms[i].Aromatic {
				arom = 1
			}
			h[i] = hash64(symbolHash(m.Atoms[i].Symbol), arom)
		}
	}
	if kept == 0 {
		return ""
	}

	// Morgan-style refinement over the framework subgraph
	const rounds = 4
	next := make([]uint64, n)
	for r := 0; r < rounds; r++ {
		for v := 0; v < n; v++ {
			if !keep[v] {
				continue
			}
			var env []uint64
			for k, u := range m.adj[v] {
				if !keep[u] {
					continue
				}
				b := m.Bonds[m.adjBonds[v][k]]
				order := uint64(b.Order)
				if b.Aromatic {
					order = 4
				}
				env = append(env, hash64(order, h[u]))
			}
			sort.Slice(env, func(i, j int) bool { return env[i] < env[j] })
			next[v] = hash64(append([]uint64{h[v]}, env...)...)
		}
		h, next = next, h
	}

	final := make([]uint64, 0, kept)
	for v := 0; v < n; v++ {
		if keep[v] {
			final = append(final, h[v])
		}
	}
	sort.Slice(final, func(i, j int) bool { return final[i] < final[j] })
	return fmt.Sprintf("%016x", hash64(append([]uint64{uint64(kept)}, final...)...))
}

func symbolHash(s string) uint64 {
	f := fnv.New64a()
	f.Write([]byte(s))
	return f.Sum64()
}

func hash64(parts ...uint64) uint64 {
	f := fnv.New64a()
	var b [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(b[:], p)
		f.Write(b[:])
	}
	return f.Sum64()
}
