package charclass

import (
	"errors"
	"fmt"
	"unicode/utf8"

	pc "github.com/shibukawa/parsercombinator"
)

// ErrInvalidSpec is returned when a class spec cannot be read.
var ErrInvalidSpec = errors.New("invalid character class spec")

// Token types produced by the spec grammar.
const (
	specRaw    = "raw"
	specNegate = "negate"
	specMember = "member"
)

var (
	negation pc.Parser[Range] = func(pctx *pc.ParseContext[Range], tokens []pc.Token[Range]) (int, []pc.Token[Range], error) {
		if len(tokens) > 0 && tokens[0].Val.From == '^' {
			return 1, []pc.Token[Range]{retype(tokens[0], specNegate)}, nil
		}
		return 0, nil, pc.ErrNotMatch
	}

	escaped = pc.Trans(
		pc.Seq(rawRune('\\'), anyRaw),
		func(pctx *pc.ParseContext[Range], src []pc.Token[Range]) ([]pc.Token[Range], error) {
			member := retype(src[1], specMember)
			member.Raw = src[0].Raw + src[1].Raw
			return []pc.Token[Range]{member}, nil
		},
	)

	// interval reads "a-z". It only applies when the upper bound sorts
	// after the lower one; otherwise the characters are read one by one.
	interval pc.Parser[Range] = func(pctx *pc.ParseContext[Range], tokens []pc.Token[Range]) (int, []pc.Token[Range], error) {
		if len(tokens) < 3 || tokens[1].Val.From != '-' || tokens[0].Val.From == '\\' {
			return 0, nil, pc.ErrNotMatch
		}
		lo, hi := tokens[0].Val.From, tokens[2].Val.From
		if hi <= lo {
			return 0, nil, pc.ErrNotMatch
		}
		return 3, []pc.Token[Range]{{
			Type: specMember,
			Pos:  tokens[0].Pos,
			Val:  Range{From: lo, To: hi},
			Raw:  tokens[0].Raw + tokens[1].Raw + tokens[2].Raw,
		}}, nil
	}

	single = pc.Trans(anyRaw, func(pctx *pc.ParseContext[Range], src []pc.Token[Range]) ([]pc.Token[Range], error) {
		return []pc.Token[Range]{retype(src[0], specMember)}, nil
	})

	classSpec = pc.Seq(
		pc.Optional(negation),
		pc.ZeroOrMore("class member", pc.Or(escaped, interval, single)),
		pc.EOS[Range](),
	)
)

var anyRaw pc.Parser[Range] = func(pctx *pc.ParseContext[Range], tokens []pc.Token[Range]) (int, []pc.Token[Range], error) {
	if len(tokens) > 0 && tokens[0].Type == specRaw {
		return 1, tokens[:1], nil
	}
	return 0, nil, pc.ErrNotMatch
}

func rawRune(c rune) pc.Parser[Range] {
	return func(pctx *pc.ParseContext[Range], tokens []pc.Token[Range]) (int, []pc.Token[Range], error) {
		if len(tokens) > 0 && tokens[0].Val.From == c {
			return 1, tokens[:1], nil
		}
		return 0, nil, pc.ErrNotMatch
	}
}

func retype(token pc.Token[Range], typeName string) pc.Token[Range] {
	token.Type = typeName
	return token
}

func specTokens(spec string) []pc.Token[Range] {
	tokens := make([]pc.Token[Range], 0, utf8.RuneCountInString(spec))
	col := 1
	for offset, c := range spec {
		tokens = append(tokens, pc.Token[Range]{
			Type: specRaw,
			Pos: &pc.Pos{
				Line:  1,
				Col:   col,
				Index: offset,
			},
			Val: Single(c),
			Raw: string(c),
		})
		col++
	}
	return tokens
}

// FromSpec builds a set from the compact class syntax: a leading '^' negates
// the set, "a-z" is an inclusive range, "\x" is the literal character x and
// any other character is a member by itself.
func FromSpec(spec string) (*RangeSet, error) {
	if !utf8.ValidString(spec) {
		return nil, fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidSpec, spec)
	}

	pctx := pc.NewParseContext[Range]()
	pctx.OrMode = pc.OrModeFast

	_, items, err := classSpec(pctx, specTokens(spec))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSpec, spec, err)
	}

	s := New()
	for _, item := range items {
		switch item.Type {
		case specNegate:
			s.negated = true
		case specMember:
			s.Insert(item.Val)
		}
	}
	return s, nil
}

// MustFromSpec is like FromSpec but panics if the spec cannot be read.
func MustFromSpec(spec string) *RangeSet {
	s, err := FromSpec(spec)
	if err != nil {
		panic(err)
	}
	return s
}
