// Package calc is an arithmetic expression evaluator built on the peg
// engine.
//
// The language has decimal, 0x hexadecimal and 0b binary literals with '_'
// and '`' digit separators, the four operators with the usual precedence
// (left associative), parentheses, and "プラス" as an alias for "+". Spaces,
// tabs, U+3000, newlines and both comment styles are skipped between
// tokens.
package calc

import (
	"errors"

	"github.com/shibukawa/snappeg/cursor"
	"github.com/shibukawa/snappeg/peg"
)

// Sentinel errors
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("integer overflow")
)

// Op is a binary operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return "?"
}

type options struct {
	cacheSize   int
	grammarOpts []peg.Option
}

// Option configures a Calculator.
type Option func(*options)

// WithCacheSize sets the capacity of the token node cache.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithTracer reports rule evaluation to t.
func WithTracer(t peg.Tracer) Option {
	return func(o *options) {
		o.grammarOpts = append(o.grammarOpts, peg.WithTracer(t))
	}
}

// WithCursorOptions configures how input is decoded.
func WithCursorOptions(opts ...cursor.Option) Option {
	return func(o *options) {
		o.grammarOpts = append(o.grammarOpts, peg.WithCursorOptions(opts...))
	}
}

// Calculator evaluates expressions to values of type T. It is safe for
// concurrent use.
type Calculator[T any] struct {
	grammar *peg.Grammar
	builder *peg.Builder
}

func newCalculator[T any](arith arithmetic[T], fractions bool, opts []Option) (*Calculator[T], error) {
	o := options{cacheSize: peg.DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	b, err := peg.NewBuilder(o.cacheSize)
	if err != nil {
		return nil, err
	}

	start := buildGrammar(b, arith, fractions)
	return &Calculator[T]{
		grammar: peg.New(start, o.grammarOpts...),
		builder: b,
	}, nil
}

// Eval evaluates src.
//
// Errors are a *peg.SyntaxError for input outside the language, a
// *peg.ActionError wrapping ErrDivisionByZero or ErrOverflow for arithmetic
// failures, and a *cursor.MalformedInputError for undecodable bytes.
func (c *Calculator[T]) Eval(src string) (T, error) {
	return c.EvalBytes([]byte(src))
}

func (c *Calculator[T]) EvalBytes(src []byte) (T, error) {
	var zero T
	res, err := c.grammar.Parse(src)
	if err != nil {
		return zero, err
	}
	return res.Value.(T), nil
}

// Tokens lists the literal tokens of the language.
func (c *Calculator[T]) Tokens() []string {
	return c.builder.Tokens()
}

func (c *Calculator[T]) Grammar() *peg.Grammar {
	return c.grammar
}
