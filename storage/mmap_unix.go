//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd
// +build darwin dragonfly freebsd linux netbsd openbsd

package storage

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Open maps the file at path into memory read-only.
func Open(path string) (*Mapped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	if st.Size() == 0 {
		return &Mapped{}, nil
	}

	buf, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap %s", path)
	}

	return &Mapped{
		data: buf,
		close: func() error {
			return unix.Munmap(buf)
		},
	}, nil
}
