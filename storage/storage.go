// Package storage reads and writes the files around a disk build.
package storage

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ReadFile returns the contents of the file at path.
func ReadFile(path string) ([]byte, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}

// WriteFile replaces the file at path with data. The data is written to a
// temporary file in the same directory first, so a failed write never
// leaves a truncated file behind.
func WriteFile(path string, data []byte) error {
	tmp, err := ioutil.TempFile(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}

	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "sync %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrapf(err, "chmod %s", path)
	}

	return errors.Wrapf(os.Rename(tmp.Name(), path), "rename %s", path)
}

// Mapped is a read-only view of a whole file.
type Mapped struct {
	data  []byte
	close func() error
}

// Bytes returns the file contents. They are only valid until Close.
func (m *Mapped) Bytes() []byte {
	return m.data
}

func (m *Mapped) Close() error {
	if m.close == nil {
		return nil
	}
	err := m.close()
	m.close = nil
	m.data = nil
	return err
}
