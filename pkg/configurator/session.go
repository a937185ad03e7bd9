package configurator

import (
	"errors"

	"github.com/marcusbikes/storefront/pkg/catalog"
	"github.com/marcusbikes/storefront/pkg/money"
)

var (
	// ErrNoProduct is returned when an operation needs an active product
	ErrNoProduct = errors.New("no active product")
	// ErrNotValid is returned when AddToCart is called on an incomplete or
	// conflicting configuration
	ErrNotValid = errors.New("configuration is not valid")
)

// Session holds the state of one in-progress customization: the active
// product, the per-component selections, and the cart. Sessions are plain
// values with no shared globals, so any number can run side by side; the
// caller serializes operations on a single session.
type Session struct {
	product    *catalog.Product
	selections Selections
	cart       Cart
}

// NewSession creates a session with no active product and an empty cart
func NewSession() *Session {
	return &Session{selections: make(Selections)}
}

// Product returns the active product, nil when none is set
func (s *Session) Product() *catalog.Product {
	return s.product
}

// SetProduct replaces the active product and resets the selections. This is
// the only operation that clears selections; the cart is kept so a customer
// can configure several products in one visit.
func (s *Session) SetProduct(p *catalog.Product) {
	s.product = p
	s.selections = make(Selections)
}

// SelectOption records the option for a component, overwriting any prior
// selection. No validation happens here — selecting an option that another
// selection now excludes is allowed and surfaces through Validate, matching
// the storefront behavior of never silently reverting a customer's click.
func (s *Session) SelectOption(componentID, optionID catalog.ID) {
	s.selections[componentID] = optionID
}

// Selections returns a copy of the current selections
func (s *Session) Selections() Selections {
	return s.selections.Clone()
}

// TotalPrice returns the live total for the current configuration, or just 0
// when no product is active.
func (s *Session) TotalPrice() money.Cents {
	if s.product == nil {
		return 0
	}
	return TotalPrice(s.product, s.selections)
}

// Validate checks the current configuration. With no active product the
// session is trivially valid, mirroring the initial storefront state.
func (s *Session) Validate() Validation {
	if s.product == nil {
		return Validation{Valid: true}
	}
	return Validate(s.product, s.selections)
}

// AvailableOptions returns the selectable options of one component under the
// current selections.
func (s *Session) AvailableOptions(componentID catalog.ID) ([]catalog.Option, error) {
	if s.product == nil {
		return nil, ErrNoProduct
	}
	component, ok := s.product.Component(componentID)
	if !ok {
		return nil, errors.New("no such component")
	}
	return AvailableOptions(s.product, component, s.selections), nil
}

// AdjustedPrice runs the what-if evaluation for one option of a component
func (s *Session) AdjustedPrice(componentID catalog.ID, option catalog.Option) (AdjustedPrice, error) {
	if s.product == nil {
		return AdjustedPrice{}, ErrNoProduct
	}
	component, ok := s.product.Component(componentID)
	if !ok {
		return AdjustedPrice{}, errors.New("no such component")
	}
	return AdjustedPriceFor(s.product, component, option, s.selections), nil
}

// AddToCart snapshots the current configuration as a new cart line with
// quantity 1. The configuration must validate; the storefront disables the
// button, but the session refuses independently rather than trusting it.
func (s *Session) AddToCart() (CartLine, error) {
	if s.product == nil {
		return CartLine{}, ErrNoProduct
	}
	if v := Validate(s.product, s.selections); !v.Valid {
		return CartLine{}, ErrNotValid
	}

	line := CartLine{
		ProductID:  s.product.ID,
		Selections: s.selections.Clone(),
		UnitPrice:  TotalPrice(s.product, s.selections),
		Quantity:   1,
	}
	s.cart.add(line)
	return line, nil
}

// Cart returns the session's cart
func (s *Session) Cart() *Cart {
	return &s.cart
}
