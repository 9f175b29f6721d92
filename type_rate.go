package equity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rate is a ratio, 0.22 for a 22% marginal rate.
type Rate struct {
	value decimal.Decimal
}

func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value)}
}

// Percent converts a percentage (22 for 22%) into a Rate.
func Percent(p decimal.Decimal) Rate { return Rate{value: p.Shift(-2)} }

func (r Rate) Equal(q Rate) bool { return r.value.Equal(q.value) }
func (r Rate) IsZero() bool      { return r.value.IsZero() }

// valid reports whether the rate is within [0, 1].
func (r Rate) valid() bool {
	return !r.value.IsNegative() && r.value.LessThanOrEqual(decimal.NewFromInt(1))
}

func (r Rate) String() string {
	return fmt.Sprintf("%s%%", r.value.Shift(2).StringFixed(2))
}
