package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"adfbuild/amiga/adf"
	"adfbuild/amiga/manifest"
	"adfbuild/storage"
)

const (
	defaultImageName = "disk.adf"
	imageExtension   = ".adf"
	fileTableSuffix  = ".filetable.txt"
)

var (
	createOut      string
	createPath     string
	createConfig   string
	createBoot     = bootManifest
	createBootFile string
)

type createOptions struct {
	Out      string
	Path     string
	Config   string
	Boot     bootMode
	BootFile string
}

type createResult struct {
	Build     *adf.Build
	ImagePath string
	TablePath string
}

var amigaCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new .ADF disk image",
	Long: `Create an ADF disk image from a disk.json manifest and the files it names.
The file table report is written next to the image as <out>.filetable.txt.`,
	Args:                  cobra.NoArgs,
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		result, err := createDisk(createOptions{
			Out:      createOut,
			Path:     createPath,
			Config:   createConfig,
			Boot:     createBoot,
			BootFile: createBootFile,
		})
		if err != nil {
			switch e := errors.Cause(err).(type) {
			case adf.CapacityExceeded:
				log.Errorf("disk is %d bytes over budget!\n", e.OverBy)
			default:
				log.Errorf("%v\n", err)
			}
			os.Exit(1)
		}

		green := color.New(color.FgGreen)
		green.Fprintf(color.Output, "ADF Disk Image: %s\n", absPath(result.ImagePath))
		green.Fprintf(color.Output, "ADF File Table: %s\n", absPath(result.TablePath))

		fyi := color.New(color.FgWhite)
		if result.Build.Free < adf.DiskSize/10 {
			fyi = color.New(color.FgYellow)
		}
		fyi.Fprintf(color.Output, "FYI: you have %d bytes remaining on this disk\n", result.Build.Free)
	},
}

func init() {
	amigaCreateCmd.Flags().StringVarP(&createOut, "out", "o", defaultImageName, `output <filename>.adf file name`)
	amigaCreateCmd.Flags().StringVarP(&createPath, "path", "p", "", `folder containing disk.json and disk files, default: working directory`)
	amigaCreateCmd.Flags().StringVarP(&createConfig, "config", "c", manifest.DefaultConfig, `manifest json file, relative to --path`)
	amigaCreateCmd.Flags().Var(&createBoot, "boot", `boot block source: manifest, file or none`)
	amigaCreateCmd.Flags().StringVar(&createBootFile, "boot-file", manifest.DefaultBootFile, `boot block file used with --boot file`)
	amigaCmd.AddCommand(amigaCreateCmd)
}

// createDisk loads the manifest, assembles the image and writes the image
// and its file table report into the manifest folder.
func createDisk(opts createOptions) (*createResult, error) {
	out := opts.Out
	if out == "" {
		out = defaultImageName
	}
	if !strings.HasSuffix(strings.ToLower(out), imageExtension) {
		out += imageExtension
	}

	folder := opts.Path
	if folder == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "working directory")
		}
		folder = wd
	} else {
		folder = manifest.NormalizePath(folder)
	}

	config := opts.Config
	if config == "" {
		config = manifest.DefaultConfig
	}

	m, err := manifest.Load(folder, config, opts.Boot.policy(opts.BootFile))
	if err != nil {
		return nil, err
	}

	build, err := adf.Assemble(m)
	if err != nil {
		return nil, err
	}

	result := &createResult{
		Build:     build,
		ImagePath: filepath.Join(folder, out),
		TablePath: filepath.Join(folder, out+fileTableSuffix),
	}
	if err := storage.WriteFile(result.ImagePath, build.Image); err != nil {
		return nil, err
	}
	if err := storage.WriteFile(result.TablePath, []byte(build.Report)); err != nil {
		_ = os.Remove(result.ImagePath)
		return nil, err
	}

	return result, nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
