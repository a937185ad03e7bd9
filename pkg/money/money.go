package money

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is a fixed-point amount in euro cents. All price arithmetic in the
// configurator runs on Cents so that summing many option prices never
// accumulates floating point error; conversion to a decimal string happens
// only at the presentation boundary.
type Cents int64

// FromFloat converts a decimal euro amount (as found in catalog files) to
// Cents, rounding half away from zero.
func FromFloat(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// Float64 returns the amount as a decimal euro value. For display only.
func (c Cents) Float64() float64 {
	return float64(c) / 100
}

// Mul scales the amount by an integer quantity.
func (c Cents) Mul(n int) Cents {
	return c * Cents(n)
}

// String formats the amount as a decimal with two fraction digits, e.g. "749.50".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON encodes the amount as a JSON number in euros, matching the
// shape catalog files and API clients use.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string. Catalog data
// arrives loosely typed; coercion happens here, once, so the rest of the
// code can assume well-formed amounts.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*c = FromFloat(f)
	return nil
}

var _ json.Marshaler = Cents(0)
var _ json.Unmarshaler = (*Cents)(nil)
