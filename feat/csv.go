package feat

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go-ml.dev/pkg/molnet/chem"
	"go-ml.dev/pkg/molnet/dataset"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
)

/*
CSVLoader reads a raw dataset file and featurizes every record with the
bound strategy. Records with an unreadable structure or label are skipped
and counted, not fatal.
*/
type CSVLoader struct {
	Tasks       []string // label column names
	SmilesField string   // structure descriptor column name
	Feat        Featurizer
}

/*
FeaturizeFile produces a sharded dataset from the CSV file at path
*/
func (l *CSVLoader) FeaturizeFile(path string, shardSize int) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to open dataset file %v: %v", path, err.Error())
	}
	defer f.Close()
	rd := csv.NewReader(f)
	header, err := rd.Read()
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to read header of %v: %v", path, err.Error())
	}
	smilesCol := -1
	taskCols := make([]int, len(l.Tasks))
	for i := range taskCols {
		taskCols[i] = -1
	}
	for i, name := range header {
		if name == l.SmilesField {
			smilesCol = i
		}
		for t, task := range l.Tasks {
			if name == task {
				taskCols[t] = i
			}
		}
	}
	if smilesCol < 0 {
		return nil, zorros.Errorf("dataset file %v has no column %q", path, l.SmilesField)
	}
	for t, c := range taskCols {
		if c < 0 {
			return nil, zorros.Errorf("dataset file %v has no task column %q", path, l.Tasks[t])
		}
	}

	ds := dataset.New(l.Tasks, shardSize)
	skipped := 0
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, zorros.Wrapf(err, "failed to read %v: %v", path, err.Error())
		}
		labels := make([]float64, len(taskCols))
		bad := false
		for t, c := range taskCols {
			if labels[t], err = strconv.ParseFloat(rec[c], 64); err != nil {
				bad = true
				break
			}
		}
		if bad {
			skipped++
			continue
		}
		smiles := rec[smilesCol]
		mol, err := chem.ParseSMILES(smiles)
		if err != nil {
			skipped++
			continue
		}
		payload, err := l.Feat.Featurize(smiles, mol)
		if err != nil {
			skipped++
			continue
		}
		ds.Append(dataset.Example{ID: smiles, Features: payload, Labels: labels})
	}
	if skipped > 0 {
		zlog.Warningf("skipped %v unreadable records in %v", skipped, filepath.Base(path))
	}
	zlog.Infof("featurized %v records from %v with %v", ds.Len(), filepath.Base(path), l.Feat.Name())
	return ds, nil
}
