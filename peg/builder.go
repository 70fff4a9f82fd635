package peg

import (
	"fmt"
	"maps"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the node cache capacity used when none is given.
const DefaultCacheSize = 256

// Builder hands out terminal nodes and reuses the ones it already built for
// the same text, so a grammar that mentions "(" ten times shares one node.
// The cache belongs to the builder; unrelated grammars do not share nodes.
//
// Every text passed to Tk is also recorded in a registry that is never
// evicted, so Tokens lists the whole language whatever the cache size.
type Builder struct {
	tokens    map[string]struct{}
	literals  *lru.Cache[string, *Literal]
	classes   *lru.Cache[string, *CharClass]
	skipChars *lru.Cache[string, *SkipChar]
}

// NewBuilder creates a Builder whose caches hold up to size nodes each.
func NewBuilder(size int) (*Builder, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	literals, err := lru.New[string, *Literal](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create literal cache: %w", err)
	}
	classes, err := lru.New[string, *CharClass](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create class cache: %w", err)
	}
	skipChars, err := lru.New[string, *SkipChar](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create skip class cache: %w", err)
	}
	return &Builder{tokens: make(map[string]struct{}), literals: literals, classes: classes, skipChars: skipChars}, nil
}

// Tk returns the literal node for text.
func (b *Builder) Tk(text string) *Literal {
	b.tokens[text] = struct{}{}
	if l, ok := b.literals.Get(text); ok {
		return l
	}
	l := Tk(text)
	b.literals.Add(text, l)
	return l
}

// Set returns the class node for spec. It panics on an invalid spec.
func (b *Builder) Set(spec string) *CharClass {
	if c, ok := b.classes.Get(spec); ok {
		return c
	}
	c := Set(spec)
	b.classes.Add(spec, c)
	return c
}

// Char returns the skip class node for spec. The range set is shared with
// Set when the same spec was seen there. It panics on an invalid spec.
func (b *Builder) Char(spec string) *SkipChar {
	if c, ok := b.skipChars.Get(spec); ok {
		return c
	}
	var c *SkipChar
	if class, ok := b.classes.Peek(spec); ok {
		c = CharOf(class.set)
	} else {
		c = Char(spec)
	}
	b.skipChars.Add(spec, c)
	return c
}

// Tokens lists every literal text requested through Tk, sorted.
func (b *Builder) Tokens() []string {
	return slices.Sorted(maps.Keys(b.tokens))
}
