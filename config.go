package molnet

import (
	"fmt"

	"go-ml.dev/pkg/molnet/feat"
	"go-ml.dev/pkg/molnet/splits"
)

// featurization strategy names
const (
	FeaturizerECFP      = "ECFP"
	FeaturizerGraphConv = "GraphConv"
	FeaturizerWeave     = "Weave"
	FeaturizerRaw       = "Raw"
)

// split strategy names; SplitNone requests the full dataset in the train
// slot with validation and test absent
const (
	SplitIndex    = "index"
	SplitRandom   = "random"
	SplitScaffold = "scaffold"
	SplitNone     = "None"
)

/*
Config selects the featurization and split strategies of one dataset load
and controls caching and label normalization. Empty strategy names mean
the defaults (ECFP, index).
*/
type Config struct {
	Featurizer string // ECFP, GraphConv, Weave or Raw
	Split      string // index, random, scaffold or None
	Reload     bool   // probe the cache before recomputing, persist after
	MoveMean   bool   // subtract the train mean when normalizing labels
	Seed       int64  // random splitter seed, 0 means time-seeded
}

/*
DefaultConfig mirrors the conventional loader defaults: ECFP features,
index split, caching on, mean-centered labels
*/
func DefaultConfig() Config {
	return Config{Featurizer: FeaturizerECFP, Split: SplitIndex, Reload: true, MoveMean: true}
}

func (c Config) featurizerName() string {
	if c.Featurizer == "" {
		return FeaturizerECFP
	}
	return c.Featurizer
}

func (c Config) splitName() string {
	if c.Split == "" {
		return SplitIndex
	}
	return c.Split
}

/*
ConfigError reports an unrecognized strategy name; the caller has to fix
the input, there is no fallback
*/
type ConfigError string

func (e ConfigError) Error() string { return string(e) }

func newFeaturizer(c Config) (feat.Featurizer, error) {
	switch c.featurizerName() {
	case FeaturizerECFP:
		return feat.Circular{Size: feat.DefaultFingerprintSize, Radius: feat.DefaultRadius}, nil
	case FeaturizerGraphConv:
		return feat.GraphConv{}, nil
	case FeaturizerWeave:
		return feat.Weave{}, nil
	case FeaturizerRaw:
		return feat.Raw{}, nil
	}
	return nil, ConfigError(fmt.Sprintf("unknown featurizer %q", c.Featurizer))
}

func newSplitter(c Config) (splits.Splitter, error) {
	switch c.splitName() {
	case SplitIndex:
		return splits.IndexSplitter{}, nil
	case SplitRandom:
		return splits.RandomSplitter{Seed: c.Seed}, nil
	case SplitScaffold:
		return splits.ScaffoldSplitter{}, nil
	}
	return nil, ConfigError(fmt.Sprintf("unknown split %q", c.Split))
}
