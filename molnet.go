/*
Package molnet loads molecular-property regression datasets: raw records
are featurized with a selected strategy, partitioned into train/validation/
test subsets, the label scale is normalized with statistics fit on the
train subset only, and the result is cached on disk so repeated loads with
the same configuration skip the whole recomputation.
*/
package molnet

import (
	"path/filepath"

	"go-ml.dev/pkg/molnet/dataset"
	"go-ml.dev/pkg/molnet/feat"
	"go-ml.dev/pkg/molnet/fu"
	"go-ml.dev/pkg/molnet/splits"
	"go-ml.dev/pkg/molnet/store"
	"go-ml.dev/pkg/molnet/trans"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
)

// ShardSize bounds the memory profile of featurization and caching
const ShardSize = 8192

/*
DatasetSpec identifies one loadable dataset: where its raw file lives and
what it predicts
*/
type DatasetSpec struct {
	Name        string   // cache directory prefix
	File        string   // raw file name in the data directory
	URL         string   // fixed remote location of the raw file
	Tasks       []string // target-variable names
	SmilesField string   // structure descriptor column
}

/*
Pipeline drives the load → featurize → split → normalize → cache flow.
The data directory and the source of raw files are injected at
construction; there is no ambient global state.
*/
type Pipeline struct {
	DataDir string
	Source  DataSource
}

/*
NewPipeline creates a pipeline over the given data directory; an empty
dataDir means the conventional per-user dataset cache location
*/
func NewPipeline(dataDir string) *Pipeline {
	if dataDir == "" {
		dataDir = fu.DatasetPath("")
	}
	return &Pipeline{DataDir: dataDir, Source: FileSource{Dir: dataDir}}
}

// cacheDir derives the deterministic cache location of one configuration.
// MoveMean participates in the key so differently-normalized entries never
// collide.
func (p *Pipeline) cacheDir(name string, c Config) string {
	fz := c.featurizerName()
	if !c.MoveMean {
		fz += "_mean_unmoved"
	}
	return filepath.Join(p.DataDir, name, fz, c.splitName())
}

/*
Load runs the pipeline for one dataset. It returns the fixed task list of
the dataset, the split result and the fitted transformer states. With
Split == SplitNone the whole transformed dataset comes back in the train
slot, validation and test stay absent, and nothing is persisted even when
Reload is set.
*/
func (p *Pipeline) Load(spec DatasetSpec, c Config) ([]string, dataset.Splits, []trans.State, error) {
	fz, err := newFeaturizer(c)
	if err != nil {
		return nil, dataset.Splits{}, nil, err
	}
	var sp splits.Splitter
	if c.splitName() != SplitNone {
		if sp, err = newSplitter(c); err != nil {
			return nil, dataset.Splits{}, nil, err
		}
	}

	zlog.Infof("about to load %v dataset", spec.Name)
	saveDir := p.cacheDir(spec.Name, c)
	if c.Reload {
		if found, cached, states := store.TryLoad(saveDir); found {
			return spec.Tasks, cached, states, nil
		}
	}

	if !p.Source.Exists(spec.File) {
		zlog.Infof("fetching %v", spec.URL)
		if err = p.Source.Fetch(spec.URL, spec.File); err != nil {
			return nil, dataset.Splits{}, nil, err
		}
	}

	zlog.Infof("about to featurize %v dataset", spec.Name)
	loader := &feat.CSVLoader{Tasks: spec.Tasks, SmilesField: spec.SmilesField, Feat: fz}
	ds, err := loader.FeaturizeFile(p.Source.Path(spec.File), ShardSize)
	if err != nil {
		return nil, dataset.Splits{}, nil, err
	}

	nrm := trans.Normalization{MoveMean: c.MoveMean}
	if c.splitName() == SplitNone {
		zlog.Info("split is none, about to transform data")
		st, err := nrm.Fit(ds)
		if err != nil {
			return nil, dataset.Splits{}, nil, err
		}
		return spec.Tasks, dataset.Splits{Train: trans.Apply(ds, st)}, []trans.State{st}, nil
	}

	zlog.Infof("about to split data with %v splitter", sp.Name())
	train, valid, test, err := sp.TrainValidTest(ds, splits.DefaultFractions())
	if err != nil {
		return nil, dataset.Splits{}, nil, err
	}

	st, err := nrm.Fit(train)
	if err != nil {
		return nil, dataset.Splits{}, nil, err
	}
	zlog.Info("about to transform data")
	result := dataset.Splits{
		Train: trans.Apply(train, st),
		Valid: trans.Apply(valid, st),
		Test:  trans.Apply(test, st),
	}
	states := []trans.State{st}

	if c.Reload {
		if err = store.Save(saveDir, result, states); err != nil {
			return nil, dataset.Splits{}, nil, zorros.Trace(err)
		}
	}
	return spec.Tasks, result, states, nil
}
