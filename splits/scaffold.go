package splits

import (
	"sort"

	"go-ml.dev/pkg/molnet/chem"
	"go-ml.dev/pkg/molnet/dataset"
)

/*
ScaffoldSplitter groups examples by their molecular scaffold and assigns
whole groups to subsets, largest groups first, so structurally related
compounds never leak across the partition.
*/
type ScaffoldSplitter struct{}

func (ScaffoldSplitter) Name() string { return "scaffold" }

func (ScaffoldSplitter) TrainValidTest(d *dataset.Dataset, f Fractions) (*dataset.Dataset, *dataset.Dataset, *dataset.Dataset, error) {
	if err := checkFractions(f); err != nil {
		return nil, nil, nil, err
	}
	groups := map[string][]int{}
	var order []string // first-appearance order for deterministic ties
	for i := 0; i < d.Len(); i++ {
		key := ""
		if mol, err := chem.ParseSMILES(d.At(i).ID); err == nil {
			key = chem.Scaffold(mol)
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(groups[order[a]]) > len(groups[order[b]])
	})

	trainEnd, validEnd := cutoffs(d.Len(), f)
	var trainIdx, validIdx, testIdx []int
	for _, key := range order {
		set := groups[key]
		switch {
		case len(trainIdx)+len(set) <= trainEnd:
			trainIdx = append(trainIdx, set...)
		case len(trainIdx)+len(validIdx)+len(set) <= validEnd:
			validIdx = append(validIdx, set...)
		default:
			testIdx = append(testIdx, set...)
		}
	}
	sort.Ints(trainIdx)
	sort.Ints(validIdx)
	sort.Ints(testIdx)
	return d.Select(trainIdx), d.Select(validIdx), d.Select(testIdx), nil
}
