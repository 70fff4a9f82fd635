package peg

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/stretchr/testify/require"
)

func TestBuilderSharesNodes(t *testing.T) {
	b, err := NewBuilder(16)
	require.NoError(t, err)

	assert.True(t, b.Tk("+") == b.Tk("+"))
	assert.True(t, b.Tk("+") != b.Tk("-"))
	assert.True(t, b.Set("0-9") == b.Set("0-9"))
	assert.True(t, b.Char(" \t") == b.Char(" \t"))

	// a skip class built after a value class reuses its range set
	class := b.Set("a-z")
	assert.True(t, class.RangeSet() == b.Char("a-z").set)
}

func TestBuilderIsScoped(t *testing.T) {
	b1, err := NewBuilder(0)
	require.NoError(t, err)
	b2, err := NewBuilder(0)
	require.NoError(t, err)

	assert.True(t, b1.Tk("(") != b2.Tk("("))
}

func TestBuilderTokens(t *testing.T) {
	b, err := NewBuilder(8)
	require.NoError(t, err)

	b.Tk("*")
	b.Tk("+")
	b.Tk("(")
	b.Tk("+")
	assert.Equal(t, []string{"(", "*", "+"}, b.Tokens())
}

func TestBuilderEviction(t *testing.T) {
	b, err := NewBuilder(2)
	require.NoError(t, err)

	first := b.Tk("a")
	b.Tk("b")
	b.Tk("c")
	assert.Equal(t, 2, b.literals.Len())
	// evicted literals are still tokens of the language
	assert.Equal(t, []string{"a", "b", "c"}, b.Tokens())

	// an evicted node is rebuilt; it still matches the same text
	again := b.Tk("a")
	assert.True(t, first != again)
	assert.Equal(t, first.Text(), again.Text())
}

func TestBuilderPanicsOnInvalidSpec(t *testing.T) {
	b, err := NewBuilder(4)
	require.NoError(t, err)

	assert.Panics(t, func() { b.Set("\xff") })
}
