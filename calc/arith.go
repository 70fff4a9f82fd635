package calc

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// DefaultDivisionPrecision is the number of fractional digits kept by
// decimal division.
const DefaultDivisionPrecision = 16

// New returns a calculator over int64. Division truncates toward zero.
func New(opts ...Option) (*Calculator[int64], error) {
	return newCalculator[int64](intArithmetic{}, false, opts)
}

// NewDecimal returns a calculator over arbitrary-precision decimals that
// also accepts fractional literals such as 1.25. Division keeps precision
// fractional digits; a non-positive precision selects the default.
func NewDecimal(precision int32, opts ...Option) (*Calculator[decimal.Decimal], error) {
	if precision <= 0 {
		precision = DefaultDivisionPrecision
	}
	return newCalculator[decimal.Decimal](decimalArithmetic{precision: precision}, true, opts)
}

type intArithmetic struct{}

func (intArithmetic) literal(base int, digits string) (int64, error) {
	n, err := strconv.ParseInt(digits, base, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: literal %s does not fit in 64 bits", ErrOverflow, digits)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid literal %q: %w", digits, err)
	}
	return n, nil
}

func (intArithmetic) apply(op Op, a, b int64) (int64, error) {
	switch op {
	case OpAdd:
		r := a + b
		if (a > 0 && b > 0 && r < 0) || (a < 0 && b < 0 && r >= 0) {
			return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
		}
		return r, nil
	case OpSub:
		r := a - b
		if (a >= 0 && b < 0 && r < 0) || (a < 0 && b > 0 && r >= 0) {
			return 0, fmt.Errorf("%w: %d - %d", ErrOverflow, a, b)
		}
		return r, nil
	case OpMul:
		if a == 0 || b == 0 {
			return 0, nil
		}
		r := a * b
		if r/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
		}
		return r, nil
	case OpDiv:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		if a == math.MinInt64 && b == -1 {
			return 0, fmt.Errorf("%w: %d / %d", ErrOverflow, a, b)
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("unknown operator %d", op)
}

type decimalArithmetic struct {
	precision int32
}

func (decimalArithmetic) literal(base int, digits string) (decimal.Decimal, error) {
	if base == 10 {
		d, err := decimal.NewFromString(digits)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("invalid literal %q: %w", digits, err)
		}
		return d, nil
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("invalid base %d literal %q", base, digits)
	}
	return decimal.NewFromBigInt(n, 0), nil
}

func (d decimalArithmetic) apply(op Op, a, b decimal.Decimal) (decimal.Decimal, error) {
	switch op {
	case OpAdd:
		return a.Add(b), nil
	case OpSub:
		return a.Sub(b), nil
	case OpMul:
		return a.Mul(b), nil
	case OpDiv:
		if b.IsZero() {
			return decimal.Decimal{}, ErrDivisionByZero
		}
		return a.DivRound(b, d.precision), nil
	}
	return decimal.Decimal{}, fmt.Errorf("unknown operator %d", op)
}
