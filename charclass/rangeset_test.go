package charclass

import (
	"math/rand/v2"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/google/go-cmp/cmp"
)

func TestInsertMerges(t *testing.T) {
	tests := []struct {
		name   string
		insert []Range
		want   []Range
	}{
		{
			name:   "disjoint ranges stay apart",
			insert: []Range{{'a', 'c'}, {'x', 'z'}},
			want:   []Range{{'a', 'c'}, {'x', 'z'}},
		},
		{
			name:   "overlap is merged",
			insert: []Range{{'a', 'm'}, {'f', 'z'}},
			want:   []Range{{'a', 'z'}},
		},
		{
			name:   "adjacent on the right is merged",
			insert: []Range{{'a', 'c'}, {'d', 'f'}},
			want:   []Range{{'a', 'f'}},
		},
		{
			name:   "adjacent on the left is merged",
			insert: []Range{{'d', 'f'}, {'a', 'c'}},
			want:   []Range{{'a', 'f'}},
		},
		{
			name:   "bridging range absorbs both neighbours",
			insert: []Range{{'a', 'c'}, {'g', 'i'}, {'d', 'f'}},
			want:   []Range{{'a', 'i'}},
		},
		{
			name:   "wide range swallows several",
			insert: []Range{{'b', 'b'}, {'d', 'e'}, {'h', 'h'}, {'k', 'm'}, {'a', 'z'}},
			want:   []Range{{'a', 'z'}},
		},
		{
			name:   "duplicate insert is a no-op",
			insert: []Range{{'0', '9'}, {'0', '9'}},
			want:   []Range{{'0', '9'}},
		},
		{
			name:   "reversed bounds are normalised",
			insert: []Range{{'z', 'a'}},
			want:   []Range{{'a', 'z'}},
		},
		{
			name:   "zero and max rune boundaries",
			insert: []Range{{0, 0}, {1, 5}, {0x7FFFFFFE, 0x7FFFFFFF}},
			want:   []Range{{0, 5}, {0x7FFFFFFE, 0x7FFFFFFF}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.insert...)
			if diff := cmp.Diff(tt.want, s.Ranges()); diff != "" {
				t.Errorf("ranges mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInsertAgreesWithNaiveUnion(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for round := 0; round < 200; round++ {
		s := New()
		var inserted []Range
		for i := 0; i < 1+rng.IntN(12); i++ {
			from := rune(rng.IntN(200))
			r := Range{From: from, To: from + rune(rng.IntN(10))}
			inserted = append(inserted, r)
			s.Insert(r)
		}

		naive := func(c rune) bool {
			for _, r := range inserted {
				if r.Contains(c) {
					return true
				}
			}
			return false
		}

		ranges := s.Ranges()
		for i := 1; i < len(ranges); i++ {
			// stored ranges must be disjoint and separated by a gap
			assert.True(t, ranges[i-1].To+1 < ranges[i].From, "round %d: %v", round, ranges)
		}
		for _, r := range inserted {
			for _, c := range []rune{r.From - 1, r.From, r.To, r.To + 1} {
				assert.Equal(t, naive(c), s.Has(c), "round %d: rune %d in %v", round, c, ranges)
			}
		}
		for c := rune(-1); c < 220; c++ {
			assert.Equal(t, naive(c), s.Has(c), "round %d: rune %d", round, c)
		}
	}
}

func TestHasAndComplement(t *testing.T) {
	s := New(Range{'a', 'z'})
	assert.True(t, s.Has('a'))
	assert.True(t, s.Has('z'))
	assert.False(t, s.Has('a'-1))
	assert.False(t, s.Has('z'+1))
	assert.False(t, s.Negated())

	c := s.Complement()
	assert.True(t, c.Negated())
	assert.False(t, c.Has('m'))
	assert.True(t, c.Has('A'))

	// the receiver is unaffected
	assert.True(t, s.Has('m'))
	c.Insert(Single('A'))
	assert.False(t, s.Has('A'))
	assert.False(t, c.Has('A'))
}

func TestAny(t *testing.T) {
	s := Any()
	for _, c := range []rune{0, 'a', '\n', 0x3000, 0x10FFFF} {
		assert.True(t, s.Has(c))
	}
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "[^]", s.String())
}

func TestString(t *testing.T) {
	s := New(Range{'a', 'c'}, Single('-'), Single(' '), Single('あ'))
	assert.Equal(t, `[U+0020\-a-cあ]`, s.String())
}
