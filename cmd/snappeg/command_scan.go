package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/shibukawa/snappeg"
	"github.com/shibukawa/snappeg/cursor"
)

// ScanCmd represents the scan command
type ScanCmd struct {
	Input []string `arg:"" optional:"" help:"Text to scan; read from stdin when omitted"`
	File  string   `short:"f" help:"Read the text from a file" type:"path"`
}

// Run executes the scan command
func (cmd *ScanCmd) Run(ctx *Context) error {
	config, err := snappeg.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	src, err := readSource(ctx, cmd.Input, cmd.File)
	if err != nil {
		return err
	}

	it := cursor.New(src, config.CursorOptions()...)
	count := 0
	for unit, err := range it.Units() {
		if err != nil {
			if !ctx.Quiet {
				color.New(color.FgRed).Fprintln(ctx.Out, describeError(err))
			}
			return fmt.Errorf("%w: %w", ErrScanFailed, err)
		}
		count++
		if !ctx.Quiet {
			fmt.Fprintf(ctx.Out, "%d:%d\t%d-%d\t%U\t%q\n", unit.Pos.Line, unit.Pos.Column, unit.Start, unit.End, unit.Rune, unit.Rune)
		}
	}

	ctx.verbosef("%d code points, ending at %s", count, it.Pos())
	return nil
}
