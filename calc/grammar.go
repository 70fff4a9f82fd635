package calc

import (
	"strings"

	"github.com/shibukawa/snappeg/peg"
)

// Digit classes after the leading digit or prefix.
const (
	binDigits = "01`_"
	decDigits = "0-9`_"
	hexDigits = "0-9A-Fa-f`_"
)

var separators = strings.NewReplacer("`", "", "_", "")

// arithmetic supplies the value domain of a calculator.
type arithmetic[T any] interface {
	literal(base int, digits string) (T, error)
	apply(op Op, a, b T) (T, error)
}

// skipRule matches one piece of insignificant input.
func skipRule(b *peg.Builder) *peg.Rule {
	lf := b.Char("\n")
	ws := b.Char(" \t\u3000")
	lineComment := peg.Seq(b.Tk("//"), peg.Many(b.Char("^\n")), peg.Or(lf, peg.End()))
	blockComment := peg.Seq(b.Tk("/*"), peg.Many(peg.Not(b.Tk("*/"), b.Char("^"))), b.Tk("*/"))
	return peg.NewVoidRule("Skip").Set(peg.Or(lf, ws, lineComment, blockComment))
}

// numberRule matches an integer literal, or a decimal fraction when
// fractions is set. Only the first digit or the "0" of a prefix may be
// preceded by skipped input.
func numberRule[T any](b *peg.Builder, arith arithmetic[T], fractions bool) *peg.Rule {
	literal := func(base int) func(v any) (any, error) {
		return func(v any) (any, error) {
			digits := separators.Replace(peg.Text(v))
			if digits == "" {
				return nil, peg.ErrNoMatch
			}
			return arith.literal(base, digits)
		}
	}

	var tail peg.Expr = peg.Many(b.Set(decDigits))
	if fractions {
		tail = peg.Seq(tail, peg.Opt(peg.Seq(b.Set("."), peg.Some(b.Set(decDigits)))))
	}
	dec := peg.MapErr(peg.Seq(b.Set("0-9"), peg.NoSkip(tail)), literal(10))

	prefixed := func(marker, digits string, base int) peg.Expr {
		return peg.MapErr(peg.Seq(b.Tk("0"), peg.NoSkip(peg.Seq(b.Char(marker), peg.Some(b.Set(digits))))), literal(base))
	}
	bin := prefixed("bB", binDigits, 2)
	hex := prefixed("xX", hexDigits, 16)

	return peg.NewRule("Number").Set(peg.Or(bin, hex, dec))
}

// foldLeft evaluates the Tuple{first, List{Tuple{op, operand}...}} produced
// by a chain of same-precedence operators.
func foldLeft[T any](arith arithmetic[T]) func(v any) (any, error) {
	return func(v any) (any, error) {
		chain := v.(peg.Tuple)
		acc := chain[0].(T)
		for _, item := range chain[1].(peg.List) {
			step := item.(peg.Tuple)
			next, err := arith.apply(step[0].(Op), acc, step[1].(T))
			if err != nil {
				return nil, err
			}
			acc = next
		}
		return acc, nil
	}
}

func buildGrammar[T any](b *peg.Builder, arith arithmetic[T], fractions bool) *peg.Rule {
	number := numberRule(b, arith, fractions)

	mulOp := peg.Or(
		peg.Value(b.Tk("*"), OpMul),
		peg.Value(b.Tk("/"), OpDiv),
	)
	addOp := peg.Or(
		peg.Value(b.Tk("+"), OpAdd),
		peg.Value(b.Tk("プラス"), OpAdd),
		peg.Value(b.Tk("-"), OpSub),
	)

	expr := peg.NewRule("Expr")
	primary := peg.NewRule("Primary").Set(peg.Or(
		number,
		peg.Seq(b.Tk("("), expr, b.Tk(")")),
	))
	term := peg.NewRule("Term").Set(peg.MapErr(peg.Seq(primary, peg.Many(peg.Seq(mulOp, primary))), foldLeft(arith)))
	expr.Set(peg.MapErr(peg.Seq(term, peg.Many(peg.Seq(addOp, term))), foldLeft(arith)))

	return peg.NewRule("Start").Set(peg.Skip(skipRule(b), peg.Seq(expr, peg.End())))
}
