package peg

import (
	"errors"

	"github.com/shibukawa/snappeg/cursor"
)

// Interner assigns stable indexes to strings. Storing the same string twice
// returns the same index.
type Interner struct {
	index  map[string]int
	values []string
}

func NewInterner() *Interner {
	return &Interner{index: make(map[string]int)}
}

// Store returns the index of s, adding it if needed.
func (in *Interner) Store(s string) int {
	if i, ok := in.index[s]; ok {
		return i
	}
	i := len(in.values)
	in.index[s] = i
	in.values = append(in.values, s)
	return i
}

// Lookup returns the string stored at i.
func (in *Interner) Lookup(i int) (string, bool) {
	if i < 0 || i >= len(in.values) {
		return "", false
	}
	return in.values[i], true
}

// Values returns the stored strings in index order.
func (in *Interner) Values() []string {
	out := make([]string, len(in.values))
	copy(out, in.values)
	return out
}

func (in *Interner) Len() int {
	return len(in.values)
}

func (in *Interner) Reset() {
	clear(in.index)
	in.values = in.values[:0]
}

// Context is the mutable state of a single parse. Grammar nodes never hold
// per-parse state themselves, so one grammar can serve concurrent parses as
// long as each parse has its own Context.
type Context struct {
	it       *cursor.Iterator
	tracer   Tracer
	farthest cursor.Position
	quiet    int
	strings  *Interner
	ids      *Interner
}

// NewContext prepares a parse over it.
func NewContext(it *cursor.Iterator, tracer Tracer) *Context {
	return &Context{
		it:       it,
		tracer:   tracer,
		farthest: it.Pos(),
		strings:  NewInterner(),
		ids:      NewInterner(),
	}
}

// Cursor returns the underlying iterator.
func (c *Context) Cursor() *cursor.Iterator {
	return c.it
}

// Pos returns the current position.
func (c *Context) Pos() cursor.Position {
	return c.it.Pos()
}

// Farthest returns the furthest position at which a terminal failed to match.
func (c *Context) Farthest() cursor.Position {
	return c.farthest
}

// StoreString interns s in the string pool and returns its index.
func (c *Context) StoreString(s string) int {
	return c.strings.Store(s)
}

// StoreID interns s in the identifier pool and returns its index.
func (c *Context) StoreID(s string) int {
	return c.ids.Store(s)
}

// String returns the pooled string at i.
func (c *Context) String(i int) (string, bool) {
	return c.strings.Lookup(i)
}

// ID returns the pooled identifier at i.
func (c *Context) ID(i int) (string, bool) {
	return c.ids.Lookup(i)
}

// noMatch records a terminal failure at the current position and returns
// ErrNoMatch. Failures inside skip rules and lookahead guards are not
// recorded.
func (c *Context) noMatch() error {
	if c.quiet == 0 {
		if pos := c.it.Pos(); pos.Offset > c.farthest.Offset {
			c.farthest = pos
		}
	}
	return ErrNoMatch
}

// failurePos is where a structural failure is reported: the further of the
// stop position and the farthest terminal failure.
func (c *Context) failurePos() cursor.Position {
	pos := c.it.Pos()
	if c.farthest.Offset > pos.Offset {
		return c.farthest
	}
	return pos
}

// skipAll applies skip until it fails or stops making progress.
func (c *Context) skipAll(skip Expr) error {
	if skip == nil {
		return nil
	}
	c.quiet++
	defer func() { c.quiet-- }()

	for {
		before := c.it.Pos().Offset
		_, err := skip.Parse(c, nil)
		if errors.Is(err, ErrNoMatch) {
			return nil
		}
		if err != nil {
			return err
		}
		if c.it.Pos().Offset == before {
			return nil
		}
	}
}

func (c *Context) enter(rule string) {
	if c.tracer != nil {
		c.tracer.Enter(rule, c.it.Pos())
	}
}

func (c *Context) exit(rule string, matched bool) {
	if c.tracer != nil {
		c.tracer.Exit(rule, c.it.Pos(), matched)
	}
}
