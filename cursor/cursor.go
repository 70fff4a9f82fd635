// Package cursor decodes source bytes into Unicode scalar values and keeps
// track of the line and column of every one of them.
//
// An Iterator is forward-only; backtracking is done by taking a Mark and
// resetting to it later. Marks are plain values, so saving and restoring a
// checkpoint costs a struct copy.
package cursor

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"unicode/utf8"

	"github.com/shibukawa/snappeg/charclass"
)

// Sentinel errors
var (
	ErrMalformedInput = errors.New("malformed input")
)

// DefaultTabWidth is the number of columns a tab advances.
const DefaultTabWidth = 4

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Position is a location in the source. Line and Column start at 1; Offset
// is the byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("Line %d, Col %d", p.Line, p.Column)
}

// CodeUnit is one decoded scalar value with its source byte span and the
// position it starts at.
type CodeUnit struct {
	Rune  rune
	Start int
	End   int
	Pos   Position
}

// MalformedInputError reports bytes that cannot be decoded.
type MalformedInputError struct {
	Offset int
	Byte   byte
	Reason string
	Pos    Position
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s: %s (byte 0x%02X at offset %d, %s)", ErrMalformedInput, e.Reason, e.Byte, e.Offset, e.Pos)
}

func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}

type options struct {
	tabWidth int
	strict   bool
}

// Option configures an Iterator.
type Option func(*options)

// WithTabWidth sets how many columns a tab advances.
func WithTabWidth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.tabWidth = n
		}
	}
}

// WithStrict rejects 5 and 6 byte sequences, overlong encodings, surrogates
// and values above U+10FFFF.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// Mark is a checkpoint of an Iterator.
type Mark struct {
	pos    Position
	peek   CodeUnit
	peeked bool
}

// Iterator walks the scalar values of a byte slice.
type Iterator struct {
	src  []byte
	opts options
	st   Mark
}

// New creates an Iterator over src. A leading byte-order mark is skipped.
func New(src []byte, opts ...Option) *Iterator {
	it := &Iterator{
		src:  src,
		opts: options{tabWidth: DefaultTabWidth},
	}
	for _, opt := range opts {
		opt(&it.opts)
	}
	it.st.pos = Position{Line: 1, Column: 1}
	if bytes.HasPrefix(src, byteOrderMark) {
		it.st.pos.Offset = len(byteOrderMark)
	}
	return it
}

// NewString creates an Iterator over a string.
func NewString(src string, opts ...Option) *Iterator {
	return New([]byte(src), opts...)
}

// Pos returns the position of the next unread scalar.
func (it *Iterator) Pos() Position {
	return it.st.pos
}

// Mark returns a checkpoint of the current state.
func (it *Iterator) Mark() Mark {
	return it.st
}

// Reset restores a checkpoint taken from this Iterator.
func (it *Iterator) Reset(m Mark) {
	it.st = m
}

// Peek returns the next scalar without consuming it. ok is false at the end
// of input.
func (it *Iterator) Peek() (unit CodeUnit, ok bool, err error) {
	if it.st.peeked {
		return it.st.peek, true, nil
	}
	if it.st.pos.Offset >= len(it.src) {
		return CodeUnit{}, false, nil
	}
	unit, err = it.decode(it.st.pos.Offset)
	if err != nil {
		return CodeUnit{}, false, err
	}
	it.st.peek = unit
	it.st.peeked = true
	return unit, true, nil
}

// Next consumes and returns the next scalar. At the end of input it returns
// ok == false and leaves the Iterator unchanged.
func (it *Iterator) Next() (unit CodeUnit, ok bool, err error) {
	unit, ok, err = it.Peek()
	if !ok || err != nil {
		return unit, ok, err
	}
	it.st.peeked = false
	it.st.pos.Offset = unit.End
	it.advance(unit.Rune)
	return unit, true, nil
}

// AtEnd reports whether every scalar has been consumed.
func (it *Iterator) AtEnd() (bool, error) {
	_, ok, err := it.Peek()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Units returns the remaining scalars as a sequence, consuming them. The
// sequence stops after the first error.
func (it *Iterator) Units() iter.Seq2[CodeUnit, error] {
	return func(yield func(CodeUnit, error) bool) {
		for {
			unit, ok, err := it.Next()
			if err != nil {
				yield(CodeUnit{}, err)
				return
			}
			if !ok || !yield(unit, nil) {
				return
			}
		}
	}
}

// advance moves the position past r.
func (it *Iterator) advance(r rune) {
	switch {
	case r == '\n':
		it.st.pos.Line++
		it.st.pos.Column = 1
	case r == '\t':
		it.st.pos.Column += it.opts.tabWidth
	case r >= 0x20 && r < 0x7F:
		it.st.pos.Column++
	case charclass.Control().Has(r):
	case charclass.FullWidth().Has(r):
		it.st.pos.Column += 2
	default:
		it.st.pos.Column++
	}
}

// decode reads the scalar starting at off. A carriage return becomes a
// newline; when it is followed by a line feed both bytes form one newline.
func (it *Iterator) decode(off int) (CodeUnit, error) {
	b := it.src[off]
	if b == '\r' {
		end := off + 1
		if end < len(it.src) && it.src[end] == '\n' {
			end++
		}
		return CodeUnit{Rune: '\n', Start: off, End: end, Pos: it.st.pos}, nil
	}
	if b < 0x80 {
		return CodeUnit{Rune: rune(b), Start: off, End: off + 1, Pos: it.st.pos}, nil
	}

	var n int
	var r rune
	switch {
	case b >= 0xC0 && b <= 0xDF:
		n, r = 2, rune(b&0x1F)
	case b >= 0xE0 && b <= 0xEF:
		n, r = 3, rune(b&0x0F)
	case b >= 0xF0 && b <= 0xF7:
		n, r = 4, rune(b&0x07)
	case b >= 0xF8 && b <= 0xFB:
		n, r = 5, rune(b&0x03)
	case b == 0xFC || b == 0xFD:
		n, r = 6, rune(b&0x01)
	default:
		return CodeUnit{}, it.malformed(off, "invalid leading byte")
	}

	if off+n > len(it.src) {
		return CodeUnit{}, it.malformed(off, "truncated sequence")
	}
	for i := 1; i < n; i++ {
		c := it.src[off+i]
		if c&0xC0 != 0x80 {
			return CodeUnit{}, it.malformed(off+i, "invalid continuation byte")
		}
		r = r<<6 | rune(c&0x3F)
	}

	if it.opts.strict {
		switch {
		case n > utf8.UTFMax:
			return CodeUnit{}, it.malformed(off, "sequence longer than 4 bytes")
		case utf8.RuneLen(r) != n:
			return CodeUnit{}, it.malformed(off, "overlong or invalid scalar value")
		}
	}

	return CodeUnit{Rune: r, Start: off, End: off + n, Pos: it.st.pos}, nil
}

func (it *Iterator) malformed(off int, reason string) error {
	return &MalformedInputError{
		Offset: off,
		Byte:   it.src[off],
		Reason: reason,
		Pos:    it.st.pos,
	}
}
