package peg

import (
	"github.com/shibukawa/snappeg/charclass"
)

// Literal matches a fixed sequence of code points. It yields no value.
type Literal struct {
	text  string
	runes []rune
}

// Tk returns a node matching text exactly.
func Tk(text string) *Literal {
	return &Literal{text: text, runes: []rune(text)}
}

func (l *Literal) Text() string {
	return l.text
}

func (l *Literal) Kind() Kind {
	return VoidKind
}

func (l *Literal) Parse(ctx *Context, skip Expr) (any, error) {
	start := ctx.it.Mark()
	if err := ctx.skipAll(skip); err != nil {
		ctx.it.Reset(start)
		return nil, err
	}

	token := ctx.it.Mark()
	for _, want := range l.runes {
		unit, ok, err := ctx.it.Next()
		if err != nil {
			ctx.it.Reset(start)
			return nil, err
		}
		if !ok || unit.Rune != want {
			ctx.it.Reset(token)
			err := ctx.noMatch()
			ctx.it.Reset(start)
			return nil, err
		}
	}
	return Void{}, nil
}

// matchClass consumes one code point belonging to set, after skipping.
func matchClass(ctx *Context, skip Expr, set *charclass.RangeSet) (rune, error) {
	start := ctx.it.Mark()
	if err := ctx.skipAll(skip); err != nil {
		ctx.it.Reset(start)
		return 0, err
	}

	token := ctx.it.Mark()
	unit, ok, err := ctx.it.Next()
	if err != nil {
		ctx.it.Reset(start)
		return 0, err
	}
	if !ok || !set.Has(unit.Rune) {
		ctx.it.Reset(token)
		err := ctx.noMatch()
		ctx.it.Reset(start)
		return 0, err
	}
	return unit.Rune, nil
}

// CharClass matches one code point from a set and yields it as a rune.
type CharClass struct {
	set *charclass.RangeSet
}

// Set returns a node matching one code point from the class literal spec.
// It panics on an invalid spec.
func Set(spec string) *CharClass {
	return SetOf(charclass.MustFromSpec(spec))
}

// SetOf returns a node matching one code point from set.
func SetOf(set *charclass.RangeSet) *CharClass {
	return &CharClass{set: set}
}

// AnyChar matches any single code point.
func AnyChar() *CharClass {
	return SetOf(charclass.Any())
}

func (c *CharClass) RangeSet() *charclass.RangeSet {
	return c.set
}

func (c *CharClass) Kind() Kind {
	return ValueKind
}

func (c *CharClass) Parse(ctx *Context, skip Expr) (any, error) {
	r, err := matchClass(ctx, skip, c.set)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Many matches zero or more code points of the class.
func (c *CharClass) Many() *Repetition {
	return Many(c)
}

// Some matches one or more code points of the class.
func (c *CharClass) Some() *Repetition {
	return Some(c)
}

// Opt matches zero or one code point of the class.
func (c *CharClass) Opt() *Repetition {
	return Opt(c)
}

// SkipChar matches one code point from a set without yielding it. It is the
// building block of skip rules.
type SkipChar struct {
	set *charclass.RangeSet
}

// Char returns a node consuming one code point from the class literal spec.
// It panics on an invalid spec.
func Char(spec string) *SkipChar {
	return CharOf(charclass.MustFromSpec(spec))
}

// CharOf returns a node consuming one code point from set.
func CharOf(set *charclass.RangeSet) *SkipChar {
	return &SkipChar{set: set}
}

func (c *SkipChar) Kind() Kind {
	return VoidKind
}

func (c *SkipChar) Parse(ctx *Context, skip Expr) (any, error) {
	if _, err := matchClass(ctx, skip, c.set); err != nil {
		return nil, err
	}
	return Void{}, nil
}

// EOF succeeds only at the end of input, after skipping.
type EOF struct{}

// End returns a node matching the end of input.
func End() EOF {
	return EOF{}
}

func (EOF) Kind() Kind {
	return VoidKind
}

func (EOF) Parse(ctx *Context, skip Expr) (any, error) {
	start := ctx.it.Mark()
	if err := ctx.skipAll(skip); err != nil {
		ctx.it.Reset(start)
		return nil, err
	}
	done, err := ctx.it.AtEnd()
	if err != nil {
		ctx.it.Reset(start)
		return nil, err
	}
	if !done {
		err := ctx.noMatch()
		ctx.it.Reset(start)
		return nil, err
	}
	return Void{}, nil
}

