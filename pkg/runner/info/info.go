// Package info describes where jot keeps its data.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/jot/pkg/store"
)

type Info struct {
	Config      *store.FileConfig
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	if override := os.Getenv("JOT_CONFIG_PATH"); override != "" {
		tbl.AddRow(bold.Sprint("JOT_CONFIG_PATH"), override)
	} else {
		tbl.AddRow(bold.Sprint("JOT_CONFIG_PATH"), "not set")
	}
	configFile := n.Config.ConfigFile
	if configFile == "" {
		configFile = "none"
	}
	tbl.AddRow(bold.Sprint("config file"), configFile)
	tbl.AddRow(bold.Sprint("path"), n.Config.Path())
	tbl.AddRow(bold.Sprint("log level"), n.Config.LogLevel)
	if n.Config.LogFile != "" {
		tbl.AddRow(bold.Sprint("log file"), n.Config.LogFile)
	}
	_, _ = fmt.Fprintln(out, tbl)

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}
	c, err := n.Persistence.Load()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "")
	_, _ = bold.Fprintln(out, "Journals:")
	for _, name := range c.Names() {
		_, _ = fmt.Fprintf(out, "  %s\n", name)
	}
	if len(c) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no journals")
	}
	return nil
}
