package main

import (
	"fmt"
	"os"

	"github.com/vic/ivm/pkg/host"
	"github.com/vic/ivm/pkg/hostconfig"
	"github.com/vic/ivm/pkg/hostlog"
	"github.com/vic/ivm/pkg/stdext"
)

// buildHost loads the host config (if -c was given), then parses every
// source file named either in the config or as positional args, and
// registers the standard extrinsics wired to the process's own stdio.
func buildHost(args []string) (*host.Host, error) {
	files := args
	limit := heapSize

	if cfgFile != "" {
		cfg, err := hostconfig.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		if !verbose {
			hostlog.SetLevel(cfg.LogLevel)
		}
		if cfg.HeapSize > 0 && limit == 0 {
			limit = cfg.HeapSize
		}
		if len(files) == 0 {
			files = cfg.Files
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no source files given")
	}

	var h *host.Host
	if limit > 0 {
		h = host.NewWithHeapLimit(limit)
	} else {
		h = host.New()
	}
	stdext.Register(h, os.Stdout, os.Stdin)

	for _, f := range files {
		if err := h.ParseFile(f); err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
	}
	return h, nil
}
