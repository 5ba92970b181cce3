package molnet

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
)

/*
DataSource locates and acquires raw dataset files
*/
type DataSource interface {
	Exists(name string) bool
	Path(name string) string
	Fetch(url, name string) error
}

/*
FileSource is the default DataSource over a local data directory; Fetch
downloads into it, committing the file only after the whole body arrived
*/
type FileSource struct {
	Dir string
}

func (s FileSource) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s FileSource) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

func (s FileSource) Fetch(url, name string) error {
	resp, err := http.Get(url)
	if err != nil {
		return zorros.Wrapf(err, "failed to download %v: %v", url, err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return zorros.Errorf("failed to download %v: %v", url, resp.Status)
	}
	if err = os.MkdirAll(s.Dir, 0755); err != nil {
		return zorros.Trace(err)
	}
	wh, err := iokit.File(s.Path(name)).Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()
	if _, err = io.Copy(wh, resp.Body); err != nil {
		return zorros.Wrapf(err, "failed to write %v: %v", s.Path(name), err.Error())
	}
	return wh.Commit()
}
