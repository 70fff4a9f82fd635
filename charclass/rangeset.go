// Package charclass implements character classes as ordered sets of disjoint
// code-point ranges.
//
// A RangeSet keeps its ranges pairwise disjoint and non-adjacent: every
// insertion absorbs the stored ranges it overlaps or touches, so the stored
// ranges are always the minimal cover of everything inserted. Sets are built
// once (from a spec string, a Unicode table or explicit ranges) and are then
// shared read-only by any number of grammar nodes and concurrent parses.
package charclass

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/google/btree"
)

// Range is an inclusive interval of Unicode scalar values.
type Range struct {
	From rune
	To   rune
}

// Single returns the range holding only r.
func Single(r rune) Range {
	return Range{From: r, To: r}
}

// Contains reports whether c lies inside the range.
func (r Range) Contains(c rune) bool {
	return r.From <= c && c <= r.To
}

func (r Range) String() string {
	if r.From == r.To {
		return formatRune(r.From)
	}
	return formatRune(r.From) + "-" + formatRune(r.To)
}

// rangeLess orders disjoint ranges. Two ranges that overlap compare equal, so
// a tree lookup with any range returns a stored range colliding with it.
func rangeLess(a, b Range) bool {
	return a.To < b.From
}

const treeDegree = 8

func newTree() *btree.BTreeG[Range] {
	return btree.NewG[Range](treeDegree, rangeLess)
}

// RangeSet is a set of code points stored as disjoint ranges, optionally
// negated.
type RangeSet struct {
	tree    *btree.BTreeG[Range]
	negated bool
}

// New creates a non-negated set holding the given ranges.
func New(ranges ...Range) *RangeSet {
	s := &RangeSet{tree: newTree()}
	for _, r := range ranges {
		s.Insert(r)
	}
	return s
}

// Any returns the set matching every scalar value: an empty, negated set.
func Any() *RangeSet {
	return &RangeSet{tree: newTree(), negated: true}
}

// FromTables builds a non-negated set from Unicode range tables.
func FromTables(tables ...*unicode.RangeTable) *RangeSet {
	s := New()
	for _, table := range tables {
		s.insertTable(table)
	}
	return s
}

func (s *RangeSet) insertTable(table *unicode.RangeTable) {
	for _, r := range table.R16 {
		s.insertStrided(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range table.R32 {
		s.insertStrided(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
}

func (s *RangeSet) insertStrided(lo, hi, stride rune) {
	if stride <= 1 {
		s.Insert(Range{From: lo, To: hi})
		return
	}
	for c := lo; c <= hi; c += stride {
		s.Insert(Single(c))
	}
}

// Insert adds r to the set, merging it with every stored range it overlaps
// or touches.
func (s *RangeSet) Insert(r Range) {
	if r.From > r.To {
		r.From, r.To = r.To, r.From
	}

	// Absorbing a collision can widen r into further stored ranges, so
	// look again until nothing collides.
	for {
		hit, found := s.tree.Get(r)
		if !found {
			break
		}
		r.From = min(r.From, hit.From)
		r.To = max(r.To, hit.To)
		s.tree.Delete(hit)
	}

	if r.From > 0 {
		if left, found := s.tree.Get(Single(r.From - 1)); found {
			r.From = left.From
			s.tree.Delete(left)
		}
	}
	if r.To < math.MaxInt32 {
		if right, found := s.tree.Get(Single(r.To + 1)); found {
			r.To = right.To
			s.tree.Delete(right)
		}
	}

	s.tree.ReplaceOrInsert(r)
}

// Has reports whether c is a member of the set.
func (s *RangeSet) Has(c rune) bool {
	_, found := s.tree.Get(Single(c))
	return s.negated != found
}

// Negated reports whether membership is inverted.
func (s *RangeSet) Negated() bool {
	return s.negated
}

// Complement returns a new set matching exactly the values s rejects.
func (s *RangeSet) Complement() *RangeSet {
	return &RangeSet{tree: s.tree.Clone(), negated: !s.negated}
}

// Ranges returns the stored ranges in ascending order. The negation flag is
// not applied.
func (s *RangeSet) Ranges() []Range {
	ranges := make([]Range, 0, s.tree.Len())
	s.tree.Ascend(func(r Range) bool {
		ranges = append(ranges, r)
		return true
	})
	return ranges
}

// Len returns the number of stored ranges.
func (s *RangeSet) Len() int {
	return s.tree.Len()
}

func (s *RangeSet) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	if s.negated {
		sb.WriteByte('^')
	}
	s.tree.Ascend(func(r Range) bool {
		sb.WriteString(r.String())
		return true
	})
	sb.WriteByte(']')
	return sb.String()
}

func formatRune(c rune) string {
	switch {
	case c == '\\' || c == '-' || c == '^' || c == ']':
		return `\` + string(c)
	case unicode.IsGraphic(c) && c != ' ':
		return string(c)
	default:
		return fmt.Sprintf("%U", c)
	}
}
