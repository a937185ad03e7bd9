package configurator

import (
	"errors"

	"github.com/marcusbikes/storefront/pkg/catalog"
	"github.com/marcusbikes/storefront/pkg/money"
)

var (
	// ErrNoSuchLine is returned for a cart index that does not exist
	ErrNoSuchLine = errors.New("no such cart line")
	// ErrBadQuantity is returned when a quantity update would drop below 1
	ErrBadQuantity = errors.New("quantity must be at least 1")
)

// CartLine is a finalized, priced snapshot of one customization. The
// selections are copied at add time, so later changes to the session never
// reach back into the cart.
type CartLine struct {
	ProductID  catalog.ID  `json:"productId"`
	Selections Selections  `json:"selections"`
	UnitPrice  money.Cents `json:"unitPrice"`
	Quantity   int         `json:"quantity"`
}

// LineTotal is the line's contribution to the cart total
func (l CartLine) LineTotal() money.Cents {
	return l.UnitPrice.Mul(l.Quantity)
}

// Cart is an ordered sequence of cart lines. Insertion order is preserved
// and the same configuration may appear as separate lines.
type Cart struct {
	lines []CartLine
}

// Len returns the number of lines
func (c *Cart) Len() int { return len(c.lines) }

// Lines returns a copy of the lines in insertion order
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line at the given 0-based index
func (c *Cart) Line(index int) (CartLine, error) {
	if index < 0 || index >= len(c.lines) {
		return CartLine{}, ErrNoSuchLine
	}
	return c.lines[index], nil
}

// add appends a line; only the session's AddToCart builds lines, so the
// precondition check lives there.
func (c *Cart) add(line CartLine) {
	c.lines = append(c.lines, line)
}

// Remove deletes the line at the given 0-based index
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrNoSuchLine
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// UpdateQuantity sets the line's quantity. Quantities below 1 are rejected
// and the previous quantity retained; removing a line is an explicit Remove.
func (c *Cart) UpdateQuantity(index, quantity int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrNoSuchLine
	}
	if quantity < 1 {
		return ErrBadQuantity
	}
	c.lines[index].Quantity = quantity
	return nil
}

// Total sums unitPrice x quantity over all lines. Recomputed on every read;
// the cart is small and a cached total would only invite staleness.
func (c *Cart) Total() money.Cents {
	var total money.Cents
	for _, line := range c.lines {
		total += line.LineTotal()
	}
	return total
}

// Clear removes all lines (after checkout)
func (c *Cart) Clear() {
	c.lines = nil
}
