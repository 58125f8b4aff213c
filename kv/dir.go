package kv

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/cockroachdb/errors"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Dir is a Store keeping one human readable <key>.json file per key in a
// folder, so that the data can live in a private git repository.
type Dir struct {
	path string
}

// NewDir returns a store rooted at path. The folder is created on first write.
func NewDir(path string) *Dir { return &Dir{path: path} }

// Path returns the root folder.
func (d *Dir) Path() string { return d.path }

func (d *Dir) filename(key string) (string, error) {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return "", errors.Newf("invalid key %q", key)
	}
	return filepath.Join(d.path, key+".json"), nil
}

func (d *Dir) Get(_ context.Context, key string) ([]byte, error) {
	name, err := d.filename(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %q", name)
	}
	return b, nil
}

// Set writes the value to a temporary file and renames it over the previous
// one, readers never see a partially written value.
func (d *Dir) Set(_ context.Context, key string, value []byte) error {
	name, err := d.filename(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.path, 0755); err != nil {
		return errors.Wrapf(err, "cannot create folder %q", d.path)
	}
	tmp, err := os.CreateTemp(d.path, "."+key+"-*.tmp")
	if err != nil {
		return errors.Wrapf(err, "cannot write %q", name)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "cannot write %q", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "cannot write %q", name)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return errors.Wrapf(err, "cannot replace %q", name)
	}
	return nil
}
