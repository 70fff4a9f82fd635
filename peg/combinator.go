package peg

import (
	"errors"
	"fmt"

	"github.com/shibukawa/snappeg/cursor"
)

// ActionError wraps an error returned by a semantic action. It aborts the
// parse.
type ActionError struct {
	Pos cursor.Position
	Err error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action failed at %s: %v", e.Pos, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// Sequence matches First then Second.
type Sequence struct {
	First  Expr
	Second Expr
}

// Seq chains exprs left to right. Seq(a, b, c) is Seq(Seq(a, b), c); the
// results of value-bearing operands end up in one flat Tuple.
func Seq(exprs ...Expr) Expr {
	if len(exprs) == 0 {
		panic("peg: Seq needs at least one expression")
	}
	acc := exprs[0]
	for _, e := range exprs[1:] {
		acc = &Sequence{First: acc, Second: e}
	}
	return acc
}

func (s *Sequence) Kind() Kind {
	if s.First.Kind() == VoidKind && s.Second.Kind() == VoidKind {
		return VoidKind
	}
	return ValueKind
}

func (s *Sequence) Parse(ctx *Context, skip Expr) (any, error) {
	v, err := s.parse(ctx, skip)
	if t, ok := v.(seqTuple); ok {
		return Tuple(t), err
	}
	return v, err
}

// parse keeps the tuple of a left-nested chain open so that Seq(a, b, c)
// yields one flat tuple.
func (s *Sequence) parse(ctx *Context, skip Expr) (any, error) {
	start := ctx.it.Mark()
	var a any
	var err error
	if first, ok := s.First.(*Sequence); ok {
		a, err = first.parse(ctx, skip)
	} else {
		a, err = s.First.Parse(ctx, skip)
	}
	if err != nil {
		return nil, err
	}
	b, err := s.Second.Parse(ctx, skip)
	if err != nil {
		ctx.it.Reset(start)
		return nil, err
	}
	return join(a, b), nil
}

// Choice is ordered choice: Right is only tried when Left fails.
type Choice struct {
	Left  Expr
	Right Expr
}

// Or tries exprs in order and commits to the first that matches.
func Or(exprs ...Expr) Expr {
	if len(exprs) == 0 {
		panic("peg: Or needs at least one expression")
	}
	acc := exprs[0]
	for _, e := range exprs[1:] {
		acc = &Choice{Left: acc, Right: e}
	}
	return acc
}

func (c *Choice) Kind() Kind {
	if c.Left.Kind() == VoidKind && c.Right.Kind() == VoidKind {
		return VoidKind
	}
	return ValueKind
}

func (c *Choice) Parse(ctx *Context, skip Expr) (any, error) {
	start := ctx.it.Mark()
	v, err := c.Left.Parse(ctx, skip)
	if !errors.Is(err, ErrNoMatch) {
		return v, err
	}
	ctx.it.Reset(start)
	return c.Right.Parse(ctx, skip)
}

// Repetition matches Inner greedily between Min and Max times. A negative
// Max means no upper bound.
type Repetition struct {
	Min   int
	Max   int
	Inner Expr
}

// Rep matches e at least min and at most max times; max < 0 is unbounded.
func Rep(min, max int, e Expr) *Repetition {
	return &Repetition{Min: min, Max: max, Inner: e}
}

// Many matches e zero or more times.
func Many(e Expr) *Repetition {
	return Rep(0, -1, e)
}

// Some matches e one or more times.
func Some(e Expr) *Repetition {
	return Rep(1, -1, e)
}

// Opt matches e zero or one time.
func Opt(e Expr) *Repetition {
	return Rep(0, 1, e)
}

func (r *Repetition) Kind() Kind {
	return r.Inner.Kind()
}

func (r *Repetition) Parse(ctx *Context, skip Expr) (any, error) {
	start := ctx.it.Mark()
	items := List{}
	count := 0
	for r.Max < 0 || count < r.Max {
		before := ctx.it.Pos().Offset
		v, err := r.Inner.Parse(ctx, skip)
		if errors.Is(err, ErrNoMatch) {
			break
		}
		if err != nil {
			ctx.it.Reset(start)
			return nil, err
		}
		count++
		// a void branch of a mixed choice contributes nothing
		if r.Inner.Kind() == ValueKind && !isVoid(v) {
			items = append(items, v)
		}
		// an empty match can repeat any number of times
		if ctx.it.Pos().Offset == before {
			count = max(count, r.Min)
			break
		}
	}
	if count < r.Min {
		ctx.it.Reset(start)
		return nil, ErrNoMatch
	}
	if r.Inner.Kind() == VoidKind {
		return Void{}, nil
	}
	return items, nil
}

// ActionFunc transforms the result of a match. end is the position right
// after the match. Returning an error wrapping ErrNoMatch rejects the match;
// any other error aborts the parse.
type ActionFunc func(ctx *Context, v any, end cursor.Position) (any, error)

// Action runs Fn on the result of Inner.
type Action struct {
	Inner Expr
	Fn    ActionFunc
	kind  Kind
}

// NewAction builds an action node yielding a value of the given kind.
func NewAction(inner Expr, kind Kind, fn ActionFunc) *Action {
	return &Action{Inner: inner, Fn: fn, kind: kind}
}

func (a *Action) Kind() Kind {
	return a.kind
}

func (a *Action) Parse(ctx *Context, skip Expr) (any, error) {
	start := ctx.it.Mark()
	v, err := a.Inner.Parse(ctx, skip)
	if err != nil {
		return nil, err
	}
	end := ctx.it.Pos()
	out, err := a.Fn(ctx, v, end)
	switch {
	case errors.Is(err, ErrNoMatch):
		ctx.it.Reset(start)
		return nil, ErrNoMatch
	case err != nil:
		ctx.it.Reset(start)
		return nil, &ActionError{Pos: end, Err: err}
	}
	if a.kind == VoidKind {
		return Void{}, nil
	}
	return out, nil
}

// Map replaces the result of e with fn(result).
func Map(e Expr, fn func(v any) any) *Action {
	return NewAction(e, ValueKind, func(_ *Context, v any, _ cursor.Position) (any, error) {
		return fn(v), nil
	})
}

// MapLoc is Map with the position right after the match.
func MapLoc(e Expr, fn func(v any, end cursor.Position) any) *Action {
	return NewAction(e, ValueKind, func(_ *Context, v any, end cursor.Position) (any, error) {
		return fn(v, end), nil
	})
}

// MapCtx is Map with access to the parse context, e.g. to intern symbols.
func MapCtx(e Expr, fn func(ctx *Context, v any) any) *Action {
	return NewAction(e, ValueKind, func(ctx *Context, v any, _ cursor.Position) (any, error) {
		return fn(ctx, v), nil
	})
}

// MapErr is Map with a fallible function. Returning ErrNoMatch rejects the
// match and lets the grammar backtrack.
func MapErr(e Expr, fn func(v any) (any, error)) *Action {
	return NewAction(e, ValueKind, func(_ *Context, v any, _ cursor.Position) (any, error) {
		return fn(v)
	})
}

// Value replaces the result of e with a constant.
func Value(e Expr, value any) *Action {
	return NewAction(e, ValueKind, func(*Context, any, cursor.Position) (any, error) {
		return value, nil
	})
}

// Do runs fn for its side effect and yields no value.
func Do(e Expr, fn func(ctx *Context, v any)) *Action {
	return NewAction(e, VoidKind, func(ctx *Context, v any, _ cursor.Position) (any, error) {
		fn(ctx, v)
		return Void{}, nil
	})
}

// Check keeps the result of e when pred accepts it and fails otherwise.
func Check(e Expr, pred func(v any) bool) *Action {
	return NewAction(e, e.Kind(), func(_ *Context, v any, _ cursor.Position) (any, error) {
		if !pred(v) {
			return nil, ErrNoMatch
		}
		return v, nil
	})
}

// Lookahead fails when Guard matches and otherwise behaves like Inner. The
// guard never consumes input.
type Lookahead struct {
	Guard Expr
	Inner Expr
}

// Not matches inner unless guard matches at the same position.
func Not(guard, inner Expr) *Lookahead {
	return &Lookahead{Guard: guard, Inner: inner}
}

func (l *Lookahead) Kind() Kind {
	return l.Inner.Kind()
}

func (l *Lookahead) Parse(ctx *Context, skip Expr) (any, error) {
	start := ctx.it.Mark()
	ctx.quiet++
	_, err := l.Guard.Parse(ctx, skip)
	ctx.quiet--
	ctx.it.Reset(start)
	switch {
	case err == nil:
		return nil, ctx.noMatch()
	case !errors.Is(err, ErrNoMatch):
		return nil, err
	}
	return l.Inner.Parse(ctx, skip)
}

// SkipScope evaluates Inner with Skip as the active skip rule, replacing
// whatever rule was active outside. A nil Skip suspends skipping.
type SkipScope struct {
	Inner Expr
	Skip  Expr
}

// Skip evaluates inner with skipRule skipped before every terminal.
func Skip(skipRule, inner Expr) *SkipScope {
	return &SkipScope{Inner: inner, Skip: skipRule}
}

// NoSkip evaluates inner on raw input.
func NoSkip(inner Expr) *SkipScope {
	return &SkipScope{Inner: inner}
}

func (s *SkipScope) Kind() Kind {
	return s.Inner.Kind()
}

func (s *SkipScope) Parse(ctx *Context, _ Expr) (any, error) {
	return s.Inner.Parse(ctx, s.Skip)
}
