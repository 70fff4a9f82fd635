package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/shibukawa/snappeg"
	"github.com/shibukawa/snappeg/calc"
	"github.com/shibukawa/snappeg/cursor"
	"github.com/shibukawa/snappeg/peg"
)

// EvalCmd represents the eval command
type EvalCmd struct {
	Expr    []string `arg:"" optional:"" help:"Expression to evaluate; read from stdin when omitted"`
	File    string   `short:"f" help:"Read the expression from a file" type:"path"`
	Decimal bool     `help:"Use decimal arithmetic (overrides calc.mode)"`
}

// Run executes the eval command
func (cmd *EvalCmd) Run(ctx *Context) error {
	config, err := snappeg.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	src, err := readSource(ctx, cmd.Expr, cmd.File)
	if err != nil {
		return err
	}

	tracer, release, err := ctx.tracer(config)
	if err != nil {
		return err
	}
	defer release()

	opts := []calc.Option{
		calc.WithCacheSize(config.Cache.Size),
		calc.WithCursorOptions(config.CursorOptions()...),
	}
	if tracer != nil {
		opts = append(opts, calc.WithTracer(tracer))
	}

	mode := config.Calc.Mode
	if cmd.Decimal {
		mode = snappeg.ModeDecimal
	}
	ctx.verbosef("Evaluating %d bytes in %s mode", len(src), mode)

	result, err := evaluate(mode, config.Calc.DivisionPrecision, src, opts)
	if err != nil {
		if !ctx.Quiet {
			color.New(color.FgRed).Fprintln(ctx.Out, describeError(err))
		}
		return fmt.Errorf("%w: %w", ErrEvaluationFailed, err)
	}

	if !ctx.Quiet {
		color.New(color.FgGreen).Fprintf(ctx.Out, "Success: %s\n", result)
	}
	return nil
}

func evaluate(mode string, precision int32, src []byte, opts []calc.Option) (string, error) {
	switch mode {
	case snappeg.ModeDecimal:
		c, err := calc.NewDecimal(precision, opts...)
		if err != nil {
			return "", err
		}
		v, err := c.EvalBytes(src)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	case snappeg.ModeInt, "":
		c, err := calc.New(opts...)
		if err != nil {
			return "", err
		}
		v, err := c.EvalBytes(src)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("%w '%s'", snappeg.ErrUnknownCalcMode, mode)
}

// describeError renders a parse failure as "[Error] Line L, Col C." with the
// cause appended when there is one beyond the position.
func describeError(err error) string {
	var syntaxErr *peg.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("[Error] %s.", syntaxErr.Pos)
	}

	var actionErr *peg.ActionError
	if errors.As(err, &actionErr) {
		return fmt.Sprintf("[Error] %s: %v", actionErr.Pos, actionErr.Err)
	}

	var malformed *cursor.MalformedInputError
	if errors.As(err, &malformed) {
		return fmt.Sprintf("[Error] %s: %s at byte offset %d", malformed.Pos, malformed.Reason, malformed.Offset)
	}

	return fmt.Sprintf("[Error] %v", err)
}
