package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"

	"adfbuild/amiga/adf"
)

type bootSource int

const (
	bootFromManifest bootSource = iota
	bootFromFile
	bootNone
)

// BootPolicy decides where the boot block of a disk comes from.
type BootPolicy struct {
	source bootSource
	file   string
}

// BootFromManifest uses the BootBlock.FileName of the definition. A
// definition without one gets an empty boot region.
func BootFromManifest() BootPolicy {
	return BootPolicy{source: bootFromManifest}
}

// BootFromFile requires the boot block file name, relative to the manifest
// folder, and fails the build when it is missing. An empty name selects
// DefaultBootFile.
func BootFromFile(name string) BootPolicy {
	if name == "" {
		name = DefaultBootFile
	}
	return BootPolicy{source: bootFromFile, file: name}
}

// BootNone ignores any boot block and leaves the boot region zeroed.
func BootNone() BootPolicy {
	return BootPolicy{source: bootNone}
}

func (p BootPolicy) String() string {
	switch p.source {
	case bootFromFile:
		return "file " + p.file
	case bootNone:
		return "none"
	default:
		return "manifest"
	}
}

func (p BootPolicy) load(folder, manifestName string) (adf.BootSource, error) {
	var name string
	switch p.source {
	case bootNone:
		return adf.NoBoot(), nil
	case bootFromFile:
		name = p.file
	default:
		if manifestName == "" {
			return adf.NoBoot(), nil
		}
		name = manifestName
	}

	data, err := readSource(folder, name)
	if err != nil {
		return adf.BootSource{}, err
	}
	if len(data) != adf.BootBlockSize {
		return adf.BootSource{}, errors.WithStack(adf.InvalidFormat{
			Reason: fmt.Sprintf("boot block %s must be %d bytes, got %d", filepath.Join(folder, name), adf.BootBlockSize, len(data)),
		})
	}

	return adf.ProvidedBoot(data), nil
}
