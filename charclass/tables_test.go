package charclass

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestControl(t *testing.T) {
	s := Control()
	for _, c := range []rune{0, '\a', 0x1F, 0x7F, 0x80, 0x9F} {
		assert.True(t, s.Has(c), "%U", c)
	}
	for _, c := range []rune{' ', 'a', 0xA0, '~'} {
		assert.False(t, s.Has(c), "%U", c)
	}
}

func TestFullWidth(t *testing.T) {
	s := FullWidth()
	for _, c := range []rune{'あ', '漢', 0x3000, 'Ａ', '＋', 0x20000} {
		assert.True(t, s.Has(c), "%U", c)
	}
	for _, c := range []rune{'a', ' ', 'é', 0xFF61} {
		assert.False(t, s.Has(c), "%U", c)
	}
	assert.Equal(t, s, FullWidth())
}

func TestIdentifierTables(t *testing.T) {
	start := XIDStart()
	cont := XIDContinue()

	for _, c := range []rune{'a', 'Z', '_', 'é', 'あ', 'Ⅻ'} {
		assert.True(t, start.Has(c), "start %U", c)
		assert.True(t, cont.Has(c), "continue %U", c)
	}
	for _, c := range []rune{'0', '٣', 0x0301} {
		assert.False(t, start.Has(c), "start %U", c)
		assert.True(t, cont.Has(c), "continue %U", c)
	}
	for _, c := range []rune{' ', '-', '+', '('} {
		assert.False(t, start.Has(c), "start %U", c)
		assert.False(t, cont.Has(c), "continue %U", c)
	}
}
