package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/shibukawa/snappeg"
	"github.com/shibukawa/snappeg/peg"
)

const version = "v0.1.0"

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
	Trace   bool

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// CLI represents the command-line interface
type CLI struct {
	Config  string     `help:"Configuration file path" default:"snappeg.yaml"`
	Verbose bool       `help:"Enable verbose output" short:"v"`
	Quiet   bool       `help:"Suppress output" short:"q"`
	Trace   bool       `help:"Log rule entry and exit"`
	Eval    EvalCmd    `cmd:"" help:"Evaluate an arithmetic expression"`
	Scan    ScanCmd    `cmd:"" help:"Dump decoded code points with their positions"`
	Class   ClassCmd   `cmd:"" help:"Normalise a character class and test characters against it"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.Out, "snappeg %s\n", version)
	return nil
}

func (ctx *Context) verbosef(format string, args ...any) {
	if ctx.Verbose && !ctx.Quiet {
		color.New(color.FgBlue).Fprintf(ctx.Err, format+"\n", args...)
	}
}

// tracer returns the rule tracer requested by flags or configuration, and a
// function releasing its output.
func (ctx *Context) tracer(config *snappeg.Config) (peg.Tracer, func(), error) {
	if !ctx.Trace && !config.Trace.Enabled {
		return nil, func() {}, nil
	}

	logger := logrus.New()
	logger.SetLevel(config.TraceLevel())
	logger.SetOutput(ctx.Err)

	if config.Trace.Output == "" {
		return peg.NewLogTracer(logger), func() {}, nil
	}

	f, err := os.Create(config.Trace.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return peg.NewLogTracer(logger), func() { _ = f.Close() }, nil
}

func newContext(cli *CLI) *Context {
	return &Context{
		Config:  cli.Config,
		Verbose: cli.Verbose,
		Quiet:   cli.Quiet,
		Trace:   cli.Trace,
		In:      os.Stdin,
		Out:     os.Stdout,
		Err:     os.Stderr,
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("snappeg"),
		kong.Description("A parsing expression grammar engine and its demo calculator"),
		kong.UsageOnError(),
	)

	err := ctx.Run(newContext(&cli))
	if err != nil {
		if !cli.Quiet {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
