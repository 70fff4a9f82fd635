package peg

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/snappeg/cursor"
)

func TestGrammarRequiresWholeInput(t *testing.T) {
	g := New(NewRule("start").Set(Tk("ab")))

	res, err := g.ParseString("ab")
	assert.NoError(t, err)
	assert.Equal(t, any(Void{}), res.Value)
	assert.Equal(t, cursor.Position{Line: 1, Column: 3, Offset: 2}, res.End)

	_, err = g.ParseString("abc")
	var syntaxErr *SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, cursor.Position{Line: 1, Column: 3, Offset: 2}, syntaxErr.Pos)
	assert.Equal(t, "syntax error at Line 1, Col 3", err.Error())
}

func TestGrammarReportsFarthestFailure(t *testing.T) {
	num := Set("0-9")
	start := NewRule("start").Set(Skip(Char(" \n"), Seq(num, Many(Seq(Tk("+"), num)), End())))
	g := New(start)

	tests := []struct {
		name  string
		input string
		want  cursor.Position
	}{
		{"missing operand", "1+", cursor.Position{Line: 1, Column: 3, Offset: 2}},
		{"missing operand after spaces", "1 + ", cursor.Position{Line: 1, Column: 5, Offset: 4}},
		{"bad token on second line", "1+2\n+x", cursor.Position{Line: 2, Column: 2, Offset: 5}},
		{"empty input", "", cursor.Position{Line: 1, Column: 1, Offset: 0}},
		{"garbage after match", "1 2", cursor.Position{Line: 1, Column: 3, Offset: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.ParseString(tt.input)
			var syntaxErr *SyntaxError
			assert.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, tt.want, syntaxErr.Pos)
		})
	}
}

func TestGrammarRecursiveRule(t *testing.T) {
	depth := NewRule("depth")
	depth.Set(Or(
		Map(Seq(Tk("("), depth, Tk(")")), func(v any) any { return v.(int) + 1 }),
		Value(Tk("x"), 0),
	))
	g := New(depth)

	res, err := g.ParseString("(((x)))")
	assert.NoError(t, err)
	assert.Equal(t, any(3), res.Value)

	_, err = g.ParseString("((x)")
	assert.IsError(t, err, ErrSyntax)
}

func TestGrammarUndefinedRule(t *testing.T) {
	missing := NewRule("missing")
	g := New(NewRule("start").Set(Or(Tk("a"), missing)))

	_, err := g.ParseString("b")
	assert.IsError(t, err, ErrUndefinedRule)
	assert.Contains(t, err.Error(), "missing")

	// a reachable rule set later is picked up by existing references
	missing.Set(Tk("b"))
	_, err = g.ParseString("b")
	assert.NoError(t, err)
}

func TestGrammarMalformedInput(t *testing.T) {
	g := New(NewRule("start").Set(Or(Tk("z"), Many(AnyChar()))))

	_, err := g.Parse([]byte("ab\xffc"))
	assert.IsError(t, err, cursor.ErrMalformedInput)

	var mie *cursor.MalformedInputError
	assert.True(t, errors.As(err, &mie))
	assert.Equal(t, 2, mie.Offset)
}

func TestGrammarCursorOptions(t *testing.T) {
	g := New(NewRule("start").Set(Seq(Tk("\t"), Tk("a"))), WithCursorOptions(cursor.WithTabWidth(8)))
	res, err := g.ParseString("\ta")
	assert.NoError(t, err)
	assert.Equal(t, 10, res.End.Column)

	strict := New(NewRule("start").Set(Many(AnyChar())), WithCursorOptions(cursor.WithStrict(true)))
	_, err = strict.Parse([]byte{0xC0, 0xAF})
	assert.IsError(t, err, cursor.ErrMalformedInput)
}

func TestGrammarInterning(t *testing.T) {
	ident := MapCtx(Some(Set("a-z")), func(ctx *Context, v any) any {
		return ctx.StoreID(Text(v))
	})
	str := MapCtx(Seq(Tk(`"`), NoSkip(Many(Set(`^"`))), Tk(`"`)), func(ctx *Context, v any) any {
		return ctx.StoreString(Text(v))
	})
	start := NewRule("start").Set(Skip(Char(" "), Seq(Many(Or(ident, str)), End())))
	g := New(start)

	res, err := g.ParseString(`foo "x y" bar foo "x y"`)
	assert.NoError(t, err)
	assert.Equal(t, any(List{0, 0, 1, 0, 0}), res.Value)
	assert.Equal(t, []string{"foo", "bar"}, res.IDs)
	assert.Equal(t, []string{"x y"}, res.Strings)

	name, ok := res.ID(1)
	assert.True(t, ok)
	assert.Equal(t, "bar", name)
	_, ok = res.ID(2)
	assert.False(t, ok)
	s, ok := res.String(0)
	assert.True(t, ok)
	assert.Equal(t, "x y", s)

	// pools start empty on every parse
	res, err = g.ParseString("baz")
	assert.NoError(t, err)
	assert.Equal(t, []string{"baz"}, res.IDs)
	assert.Equal(t, []string{}, res.Strings)
}

func TestGrammarConcurrentParses(t *testing.T) {
	ident := MapCtx(Some(Set("a-z")), func(ctx *Context, v any) any {
		return ctx.StoreID(Text(v))
	})
	g := New(NewRule("start").Set(Skip(Char(" "), Seq(Many(ident), End()))))

	inputs := []string{"a b c", "x y", "q q q q", "m"}
	done := make(chan error, len(inputs)*10)
	for i := 0; i < 10; i++ {
		for _, input := range inputs {
			go func() {
				res, err := g.ParseString(input)
				if err == nil && len(res.IDs) > 3 {
					err = errors.New("pool leaked between parses")
				}
				done <- err
			}()
		}
	}
	for i := 0; i < cap(done); i++ {
		assert.NoError(t, <-done)
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	assert.Equal(t, 0, in.Store("a"))
	assert.Equal(t, 1, in.Store("b"))
	assert.Equal(t, 0, in.Store("a"))
	assert.Equal(t, 2, in.Len())

	v, ok := in.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	_, ok = in.Lookup(-1)
	assert.False(t, ok)

	in.Reset()
	assert.Equal(t, 0, in.Len())
	assert.Equal(t, 0, in.Store("c"))
	assert.Equal(t, []string{"c"}, in.Values())
}
