package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"adfbuild/amiga/browse"
)

var amigaCommandBrowse = &cobra.Command{
	Use:                   "browse FILE",
	Short:                 "Interactive shell over a disk image",
	Long:                  `Opens an interactive shell to list, dump and extract the files of an Amiga ADF disk image.`,
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		disk, mapped, err := openImage(args[0])
		if err != nil {
			log.Errorf("%v\n", err)
			os.Exit(1)
		}
		defer mapped.Close()

		browse.NewShell(disk.Disk(), filepath.Base(args[0])).Run()
	},
}

func init() {
	amigaCommandBrowse.Flags().StringVarP(&amigaMediaType, "media", "m", "", `Media type, default: file extension`)
	amigaCmd.AddCommand(amigaCommandBrowse)
}
