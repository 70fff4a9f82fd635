package charclass

import (
	"sync"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
	"golang.org/x/text/width"
)

// lastWideRune bounds the full-width scan; nothing above plane 3 is wide.
const lastWideRune = 0x3FFFF

var (
	control = sync.OnceValue(func() *RangeSet {
		return New(
			Range{From: 0x00, To: 0x1F},
			Single(0x7F),
			Range{From: 0x80, To: 0x9F},
		)
	})

	fullWidth = sync.OnceValue(func() *RangeSet {
		s := New()
		start := rune(-1)
		for c := rune(0); c <= lastWideRune; c++ {
			if isWide(c) {
				if start < 0 {
					start = c
				}
				continue
			}
			if start >= 0 {
				s.Insert(Range{From: start, To: c - 1})
				start = -1
			}
		}
		if start >= 0 {
			s.Insert(Range{From: start, To: lastWideRune})
		}
		return s
	})

	xidStart = sync.OnceValue(func() *RangeSet {
		s := FromTables(rangetable.Merge(unicode.L, unicode.Nl, unicode.Other_ID_Start))
		s.Insert(Single('_'))
		return s
	})

	xidContinue = sync.OnceValue(func() *RangeSet {
		return FromTables(rangetable.Merge(
			unicode.L, unicode.Nl, unicode.Other_ID_Start,
			unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue,
		))
	})
)

func isWide(c rune) bool {
	switch width.LookupRune(c).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}

// Control returns the C0 and C1 control characters and DEL. They take no
// column when source positions are counted.
func Control() *RangeSet {
	return control()
}

// FullWidth returns the characters rendered two columns wide (East Asian
// Wide and Fullwidth).
func FullWidth() *RangeSet {
	return fullWidth()
}

// XIDStart returns the characters that may start an identifier, including
// the underscore.
func XIDStart() *RangeSet {
	return xidStart()
}

// XIDContinue returns the characters that may continue an identifier.
func XIDContinue() *RangeSet {
	return xidContinue()
}
