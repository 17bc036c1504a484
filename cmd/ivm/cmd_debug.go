package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vic/ivm/pkg/debugger"
	"github.com/vic/ivm/pkg/extrinsics"
)

func newDebugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug <file>...",
		Short: "Step through reduction interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := buildHost(args)
			if err != nil {
				return err
			}
			if err := h.Boot(bootGlobal, extrinsics.N32Port(0)); err != nil {
				return err
			}
			console := debugger.NewConsole(h, os.Stdout)
			return console.Run()
		},
	}
	cmd.Flags().StringVar(&bootGlobal, "boot", "::main", "global to boot")
	return cmd
}
