package main

import (
	"github.com/spf13/cobra"

	"github.com/vic/ivm/pkg/extrinsics"
	"github.com/vic/ivm/pkg/hostlog"
)

var bootGlobal string

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file>...",
		Short: "Parse and run to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := buildHost(args)
			if err != nil {
				return err
			}
			if err := h.Boot(bootGlobal, extrinsics.N32Port(0)); err != nil {
				return err
			}
			if err := h.Execute(); err != nil {
				return err
			}
			for _, p := range h.VM.Inert {
				hostlog.Debugf("inert: %s = %s", h.Readback(p.Dest), h.Readback(p.Src))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&bootGlobal, "boot", "::main", "global to boot")
	return cmd
}
