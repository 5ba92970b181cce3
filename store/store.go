/*
Package store persists split datasets to a durable cache location and loads
them back. An entry is a directory holding one SQLite manifest (subset
sizes, task list, transformer statistics) plus xz-compressed gob shards of
every subset. Entries are written aside and renamed into place, so a
reader never observes a half-written entry; any defect on read is reported
as a miss, never as an error.
*/
package store

import (
	"database/sql"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/molnet/dataset"
	"go-ml.dev/pkg/molnet/trans"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
)

const manifestFile = "manifest.db"

var subsetNames = [3]string{"train", "valid", "test"}

func shardPath(dir, subset string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%05d.gob.xz", subset, i))
}

/*
Save writes the split result and transformer states under dir, replacing
any previous entry atomically
*/
func Save(dir string, sp dataset.Splits, states []trans.State) error {
	tmp := dir + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return zorros.Trace(err)
	}
	if err := os.MkdirAll(tmp, 0755); err != nil {
		return zorros.Trace(err)
	}
	subsets := [3]*dataset.Dataset{sp.Train, sp.Valid, sp.Test}
	for k, ds := range subsets {
		if ds == nil {
			continue
		}
		for i := 0; i < ds.NumShards(); i++ {
			if err := writeShard(shardPath(tmp, subsetNames[k], i), ds.Shard(i)); err != nil {
				return err
			}
		}
	}
	if err := writeManifest(filepath.Join(tmp, manifestFile), subsets, states); err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return zorros.Trace(err)
	}
	if err := os.Rename(tmp, dir); err != nil {
		return zorros.Trace(err)
	}
	zlog.Infof("saved dataset cache at %v", dir)
	return nil
}

/*
TryLoad reads a previously saved entry from dir. A missing, incomplete or
damaged entry yields found=false; the caller recomputes.
*/
func TryLoad(dir string) (found bool, sp dataset.Splits, states []trans.State) {
	mf := filepath.Join(dir, manifestFile)
	if _, err := os.Stat(mf); err != nil {
		return false, sp, nil
	}
	db, err := sql.Open("sqlite3", mf)
	if err != nil {
		return miss(dir, err)
	}
	defer db.Close()
	tasks, err := readTasks(db)
	if err != nil {
		return miss(dir, err)
	}
	subsets := [3]*dataset.Dataset{}
	rows, err := db.Query(`SELECT name, present, examples, shards, shard_size FROM subsets`)
	if err != nil {
		return miss(dir, err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var present, examples, shards, shardSize int
		if err = rows.Scan(&name, &present, &examples, &shards, &shardSize); err != nil {
			return miss(dir, err)
		}
		if present == 0 {
			continue
		}
		k := -1
		for i, n := range subsetNames {
			if n == name {
				k = i
			}
		}
		if k < 0 {
			return miss(dir, zorros.Errorf("unknown subset %q", name))
		}
		ds := dataset.New(tasks, shardSize)
		for i := 0; i < shards; i++ {
			exs, err := readShard(shardPath(dir, name, i))
			if err != nil {
				return miss(dir, err)
			}
			for _, ex := range exs {
				ds.Append(ex)
			}
		}
		if ds.Len() != examples {
			return miss(dir, zorros.Errorf("subset %v has %v examples, manifest says %v", name, ds.Len(), examples))
		}
		subsets[k] = ds
	}
	if err = rows.Err(); err != nil {
		return miss(dir, err)
	}
	if subsets[0] == nil {
		return miss(dir, zorros.Errorf("entry has no train subset"))
	}
	if states, err = readStates(db); err != nil {
		return miss(dir, err)
	}
	zlog.Infof("loaded dataset cache from %v", dir)
	return true, dataset.Splits{Train: subsets[0], Valid: subsets[1], Test: subsets[2]}, states
}

func miss(dir string, err error) (bool, dataset.Splits, []trans.State) {
	zlog.Warningf("ignoring damaged dataset cache at %v: %v", dir, err.Error())
	return false, dataset.Splits{}, nil
}

func writeShard(path string, examples []dataset.Example) error {
	f, err := os.Create(path)
	if err != nil {
		return zorros.Trace(err)
	}
	w, err := xz.NewWriter(f)
	if err != nil {
		f.Close()
		return zorros.Trace(err)
	}
	if err = gob.NewEncoder(w).Encode(examples); err != nil {
		f.Close()
		return zorros.Wrapf(err, "failed to encode shard %v: %v", path, err.Error())
	}
	if err = w.Close(); err != nil {
		f.Close()
		return zorros.Trace(err)
	}
	return f.Close()
}

func readShard(path string) (examples []dataset.Example, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := xz.NewReader(f)
	if err != nil {
		return nil, err
	}
	err = gob.NewDecoder(r).Decode(&examples)
	return
}

func writeManifest(path string, subsets [3]*dataset.Dataset, states []trans.State) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return zorros.Trace(err)
	}
	defer db.Close()
	const ddl = `
		CREATE TABLE subsets (name TEXT PRIMARY KEY, present INTEGER,
			examples INTEGER, shards INTEGER, shard_size INTEGER);
		CREATE TABLE tasks (ord INTEGER PRIMARY KEY, name TEXT);
		CREATE TABLE transforms (ord INTEGER PRIMARY KEY, move_mean INTEGER);
		CREATE TABLE transform_stats (transform INTEGER, task INTEGER, mean REAL, std REAL);`
	if _, err = db.Exec(ddl); err != nil {
		return zorros.Trace(err)
	}
	tx, err := db.Begin()
	if err != nil {
		return zorros.Trace(err)
	}
	defer tx.Rollback()
	for k, ds := range subsets {
		present, examples, shards, shardSize := 0, 0, 0, 0
		if ds != nil {
			present, examples, shards, shardSize = 1, ds.Len(), ds.NumShards(), ds.ShardSize()
		}
		if _, err = tx.Exec(`INSERT INTO subsets VALUES (?, ?, ?, ?, ?)`,
			subsetNames[k], present, examples, shards, shardSize); err != nil {
			return zorros.Trace(err)
		}
	}
	var tasks []string
	for _, ds := range subsets {
		if ds != nil {
			tasks = ds.Tasks()
			break
		}
	}
	for i, name := range tasks {
		if _, err = tx.Exec(`INSERT INTO tasks VALUES (?, ?)`, i, name); err != nil {
			return zorros.Trace(err)
		}
	}
	for i, st := range states {
		moveMean := 0
		if st.MoveMean {
			moveMean = 1
		}
		if _, err = tx.Exec(`INSERT INTO transforms VALUES (?, ?)`, i, moveMean); err != nil {
			return zorros.Trace(err)
		}
		for t := range st.Mean {
			if _, err = tx.Exec(`INSERT INTO transform_stats VALUES (?, ?, ?, ?)`,
				i, t, st.Mean[t], st.Std[t]); err != nil {
				return zorros.Trace(err)
			}
		}
	}
	return tx.Commit()
}

func readTasks(db *sql.DB) (tasks []string, err error) {
	rows, err := db.Query(`SELECT name FROM tasks ORDER BY ord`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, err
		}
		tasks = append(tasks, name)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, zorros.Errorf("entry has no task list")
	}
	return
}

func readStates(db *sql.DB) (states []trans.State, err error) {
	rows, err := db.Query(`SELECT ord, move_mean FROM transforms ORDER BY ord`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ord, moveMean int
		if err = rows.Scan(&ord, &moveMean); err != nil {
			return nil, err
		}
		states = append(states, trans.State{MoveMean: moveMean != 0})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	for i := range states {
		srows, err := db.Query(
			`SELECT mean, std FROM transform_stats WHERE transform = ? ORDER BY task`, i)
		if err != nil {
			return nil, err
		}
		for srows.Next() {
			var mean, std float64
			if err = srows.Scan(&mean, &std); err != nil {
				srows.Close()
				return nil, err
			}
			states[i].Mean = append(states[i].Mean, mean)
			states[i].Std = append(states[i].Std, std)
		}
		if err = srows.Err(); err != nil {
			srows.Close()
			return nil, err
		}
		srows.Close()
	}
	return
}
