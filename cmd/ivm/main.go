// ivm — an interaction-net virtual machine.
//
// ivm loads one or more .iv source files, boots the ::main global against
// an n32 0 and normalizes to completion. Output comes only from the
// extrinsics the program calls; the inert pairs it records are logged at
// debug level.
//
// Usage:
//
//	ivm run prog.iv               # run to completion
//	ivm debug prog.iv             # step interactively
//	ivm version                   # print version information
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vic/ivm/pkg/hostlog"
)

var (
	cfgFile  string
	heapSize int
	verbose  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "ivm",
	Short:         "An interaction-net virtual machine",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			hostlog.SetLevel("debug")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "host config file (YAML)")
	rootCmd.PersistentFlags().IntVar(&heapSize, "heap-size", 0, "max live wire pairs (0 = default of 1048576)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")

	rootCmd.AddCommand(newRunCmd(), newDebugCmd(), newVersionCmd())
}
