package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var amigaCommandCheck = &cobra.Command{
	Use:                   "check FILE",
	Short:                 "Verify a disk image",
	Long:                  `Verifies the boot block checksum and the file table layout of an Amiga ADF disk image.`,
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		disk, mapped, err := openImage(args[0])
		if err != nil {
			log.Errorf("%v\n", err)
			os.Exit(1)
		}
		problems := disk.Disk().Verify()
		_ = mapped.Close()

		out := cmd.OutOrStdout()
		if len(problems) == 0 {
			fmt.Fprintf(out, "%s: OK\n", args[0])
			return
		}
		for _, p := range problems {
			fmt.Fprintf(out, "%s: %s\n", args[0], p)
		}
		os.Exit(1)
	},
}

func init() {
	amigaCommandCheck.Flags().StringVarP(&amigaMediaType, "media", "m", "", `Media type, default: file extension`)
	amigaCmd.AddCommand(amigaCommandCheck)
}
