// Package peg is a parsing expression grammar engine built from small
// combinators.
//
// A grammar is a graph of Expr nodes. Each node consumes code points from a
// cursor.Iterator and either succeeds with a value or fails with ErrNoMatch,
// in which case it leaves the iterator exactly where it found it. Ordered
// choice and repetition rely on that guarantee to backtrack.
//
// Results are untyped. A node declares through Kind whether it yields a
// value; nodes that do not yield Void{}. Sequences flatten their operands
// into a Tuple, dropping Void on the way. Repetitions collect a List.
package peg

import (
	"errors"
	"strings"
)

// Sentinel errors
var (
	// ErrNoMatch is the structural failure every combinator backtracks on.
	ErrNoMatch = errors.New("no match")
	// ErrUndefinedRule is returned when a Rule is evaluated before its body
	// has been set.
	ErrUndefinedRule = errors.New("undefined rule")
	// ErrSyntax is wrapped by SyntaxError.
	ErrSyntax = errors.New("syntax error")
)

// Kind tells whether a node produces a value.
type Kind int

const (
	VoidKind Kind = iota
	ValueKind
)

func (k Kind) String() string {
	if k == VoidKind {
		return "void"
	}
	return "value"
}

// Expr is a grammar node.
//
// Parse matches the node at the current position of ctx. skip is the active
// skip rule, or nil when skipping is suspended. On ErrNoMatch the iterator
// must be left where it was on entry. Any other error is fatal and aborts the
// whole parse.
type Expr interface {
	Parse(ctx *Context, skip Expr) (any, error)
	Kind() Kind
}

// Void is the result of a node that carries no value.
type Void struct{}

// Tuple is the flattened result of a sequence of value-bearing nodes.
type Tuple []any

// List is the result of a repetition of a value-bearing node.
type List []any

func isVoid(v any) bool {
	_, ok := v.(Void)
	return ok
}

// seqTuple is a tuple still being built by a chain of sequences. Only a
// seqTuple is extended by join; Sequence.Parse hands it out as a Tuple, so a
// Tuple coming from a rule or an action always stays one element.
type seqTuple []any

// join combines the results of the two halves of a sequence.
func join(a, b any) any {
	switch {
	case isVoid(a) && isVoid(b):
		return Void{}
	case isVoid(b):
		return a
	case isVoid(a):
		return b
	}
	if t, ok := a.(seqTuple); ok {
		out := make(seqTuple, len(t), len(t)+1)
		copy(out, t)
		return append(out, b)
	}
	return seqTuple{a, b}
}

// Text concatenates the runes and strings found in v, descending into
// tuples and lists. Other values are ignored.
func Text(v any) string {
	var sb strings.Builder
	writeText(&sb, v)
	return sb.String()
}

func writeText(sb *strings.Builder, v any) {
	switch x := v.(type) {
	case rune:
		sb.WriteRune(x)
	case string:
		sb.WriteString(x)
	case Tuple:
		for _, item := range x {
			writeText(sb, item)
		}
	case List:
		for _, item := range x {
			writeText(sb, item)
		}
	}
}
