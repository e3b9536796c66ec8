//go:build !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd
// +build !darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd

package storage

// Open reads the file at path into memory.
func Open(path string) (*Mapped, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Mapped{data: data}, nil
}
