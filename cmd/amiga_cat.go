package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"adfbuild/amiga/adf/cat"
)

var amigaCatSorted bool

var amigaCommandCat = &cobra.Command{
	Use:                   "cat FILE",
	Short:                 "Displays the disk file table (catalog)",
	Long:                  `Reads and displays the file table from an Amiga ADF disk image.`,
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		disk, mapped, err := openImage(args[0])
		if err != nil {
			log.Errorf("%v\n", err)
			os.Exit(1)
		}
		defer mapped.Close()

		cat.CommandCat(disk.Disk(), amigaCatSorted).Fprint(cmd.OutOrStdout())
	},
}

func init() {
	amigaCommandCat.Flags().StringVarP(&amigaMediaType, "media", "m", "", `Media type, default: file extension`)
	amigaCommandCat.Flags().BoolVarP(&amigaCatSorted, "sort", "s", false, `List files in alpha-numeric order`)
	amigaCmd.AddCommand(amigaCommandCat)
}
