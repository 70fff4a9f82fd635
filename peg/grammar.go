package peg

import (
	"errors"
	"fmt"

	"github.com/shibukawa/snappeg/cursor"
)

// SyntaxError reports input the grammar does not accept.
type SyntaxError struct {
	Pos cursor.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s", ErrSyntax, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Result is a successful parse.
type Result struct {
	Value any
	// End is the position after the last consumed code point.
	End cursor.Position
	// Strings and IDs are the interning pools filled by actions, in index
	// order.
	Strings []string
	IDs     []string
}

// String returns the interned string at i.
func (r *Result) String(i int) (string, bool) {
	if i < 0 || i >= len(r.Strings) {
		return "", false
	}
	return r.Strings[i], true
}

// ID returns the interned identifier at i.
func (r *Result) ID(i int) (string, bool) {
	if i < 0 || i >= len(r.IDs) {
		return "", false
	}
	return r.IDs[i], true
}

// Grammar runs a start rule over whole inputs.
//
// A Grammar holds no per-parse state: interning pools live in the Context
// created by each Parse call, so they start empty every time and concurrent
// parses do not share them.
type Grammar struct {
	start      *Rule
	tracer     Tracer
	cursorOpts []cursor.Option
}

// Option configures a Grammar.
type Option func(*Grammar)

// WithTracer reports rule entry and exit to t.
func WithTracer(t Tracer) Option {
	return func(g *Grammar) {
		g.tracer = t
	}
}

// WithCursorOptions configures the iterator used for each parse.
func WithCursorOptions(opts ...cursor.Option) Option {
	return func(g *Grammar) {
		g.cursorOpts = append(g.cursorOpts, opts...)
	}
}

func New(start *Rule, opts ...Option) *Grammar {
	g := &Grammar{start: start}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Grammar) Start() *Rule {
	return g.start
}

// Parse matches the start rule against src with no skip rule active. The
// whole input must be consumed; otherwise a *SyntaxError is returned.
// Decoding failures surface as *cursor.MalformedInputError and action
// failures as *ActionError.
func (g *Grammar) Parse(src []byte) (*Result, error) {
	ctx := NewContext(cursor.New(src, g.cursorOpts...), g.tracer)

	v, err := g.start.Parse(ctx, nil)
	if errors.Is(err, ErrNoMatch) {
		return nil, &SyntaxError{Pos: ctx.failurePos()}
	}
	if err != nil {
		return nil, err
	}

	done, err := ctx.it.AtEnd()
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, &SyntaxError{Pos: ctx.failurePos()}
	}

	return &Result{
		Value:   v,
		End:     ctx.it.Pos(),
		Strings: ctx.strings.Values(),
		IDs:     ctx.ids.Values(),
	}, nil
}

func (g *Grammar) ParseString(src string) (*Result, error) {
	return g.Parse([]byte(src))
}
