package molnet

import (
	"go-ml.dev/pkg/molnet/dataset"
	"go-ml.dev/pkg/molnet/trans"
	"go-ml.dev/pkg/zorros"
)

// LipoTasks is the fixed task list of the Lipophilicity dataset
var LipoTasks = []string{"exp"}

/*
Lipo is the Lipophilicity dataset: octanol/water distribution coefficients
of 4200 compounds from ChEMBL
*/
var Lipo = DatasetSpec{
	Name:        "lipo",
	File:        "Lipophilicity.csv",
	URL:         "http://deepchem.io.s3-website-us-west-1.amazonaws.com/datasets/Lipophilicity.csv",
	Tasks:       LipoTasks,
	SmilesField: "smiles",
}

/*
LoadLipo loads the Lipophilicity dataset through a pipeline over the
conventional data directory
*/
func LoadLipo(c Config) ([]string, dataset.Splits, []trans.State, error) {
	return NewPipeline("").Load(Lipo, c)
}

/*
LuckyLoadLipo loads the Lipophilicity dataset and throws any occurred
errors as a panic
*/
func LuckyLoadLipo(c Config) ([]string, dataset.Splits, []trans.State) {
	tasks, sp, states, err := LoadLipo(c)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return tasks, sp, states
}
