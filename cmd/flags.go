package cmd

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"adfbuild/amiga/manifest"
)

// bootMode selects where the boot block comes from.
type bootMode string

const (
	bootManifest bootMode = "manifest"
	bootFile     bootMode = "file"
	bootNone     bootMode = "none"
)

var _ pflag.Value = (*bootMode)(nil)

func (b *bootMode) String() string {
	if *b == "" {
		return string(bootManifest)
	}
	return string(*b)
}

func (b *bootMode) Set(value string) error {
	switch mode := bootMode(strings.ToLower(value)); mode {
	case bootManifest, bootFile, bootNone:
		*b = mode
		return nil
	}
	return errors.Errorf("invalid boot mode %q, must be one of manifest, file, none", value)
}

func (b *bootMode) Type() string {
	return "mode"
}

func (b bootMode) policy(file string) manifest.BootPolicy {
	switch b {
	case bootFile:
		return manifest.BootFromFile(file)
	case bootNone:
		return manifest.BootNone()
	default:
		return manifest.BootFromManifest()
	}
}
