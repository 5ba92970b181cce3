package feat

import (
	"go-ml.dev/pkg/molnet/chem"
)

/*
Raw is the identity featurizer: the record still has to parse, but the
payload is the source descriptor untouched
*/
type Raw struct{}

func (Raw) Name() string { return "Raw" }

func (Raw) Featurize(smiles string, mol *chem.Molecule) (interface{}, error) {
	return RawMol{SMILES: smiles}, nil
}
