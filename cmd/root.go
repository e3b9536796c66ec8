package cmd

import (
	"fmt"
	"os"

	"github.com/nnsgmsone/damrey/logger"
	"github.com/spf13/cobra"
)

var log = logger.New(os.Stderr, "adfbuild")

var rootCmd = &cobra.Command{
	Use:   "adfbuild",
	Short: "Build and inspect Amiga ADF disk images",
	Long: `Disk Compiler - a command line tool for compiling Amiga .ADF disk files
from a disk.json manifest, and for inspecting the images it produces.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
