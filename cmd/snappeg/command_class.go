package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/shibukawa/snappeg/charclass"
)

var tables = map[string]func() *charclass.RangeSet{
	"control":      charclass.Control,
	"full-width":   charclass.FullWidth,
	"xid-start":    charclass.XIDStart,
	"xid-continue": charclass.XIDContinue,
}

// ClassCmd represents the class command
type ClassCmd struct {
	Spec  string `arg:"" optional:"" help:"Character class, e.g. '0-9A-Fa-f_' or '^\\n'"`
	Table string `help:"Use a built-in table instead of a spec: control, full-width, xid-start, xid-continue"`
	Test  string `short:"t" help:"Characters to test for membership"`
}

// Run executes the class command
func (cmd *ClassCmd) Run(ctx *Context) error {
	set, err := cmd.resolve()
	if err != nil {
		return err
	}

	if ctx.Quiet {
		return nil
	}

	if cmd.Table == "" {
		fmt.Fprintln(ctx.Out, set)
	} else {
		fmt.Fprintf(ctx.Out, "%s: %d ranges\n", cmd.Table, set.Len())
	}

	for _, c := range cmd.Test {
		if set.Has(c) {
			color.New(color.FgGreen).Fprintf(ctx.Out, "%q %U: match\n", c, c)
		} else {
			color.New(color.FgRed).Fprintf(ctx.Out, "%q %U: no match\n", c, c)
		}
	}
	return nil
}

func (cmd *ClassCmd) resolve() (*charclass.RangeSet, error) {
	if cmd.Table != "" {
		table, ok := tables[cmd.Table]
		if !ok {
			return nil, fmt.Errorf("%w '%s': must be one of control, full-width, xid-start, xid-continue", ErrUnknownTable, cmd.Table)
		}
		return table(), nil
	}
	if cmd.Spec == "" && cmd.Test == "" {
		return nil, ErrNoClass
	}
	return charclass.FromSpec(cmd.Spec)
}
