package catalog

import (
	"strconv"
	"strings"

	"github.com/marcusbikes/storefront/pkg/money"
)

// Category classifies a product line in the shop
type Category string

const (
	CategoryBicycle     Category = "bicycle"
	CategorySki         Category = "ski"
	CategorySurfboard   Category = "surfboard"
	CategoryRollerskate Category = "rollerskate"
)

// DependencyType represents how a dependency constrains the target option
type DependencyType string

const (
	DependencyRequires   DependencyType = "requires"   // Target selectable only while the source option is selected
	DependencyExcludes   DependencyType = "excludes"   // Target not selectable while the source option is selected
	DependencyRecommends DependencyType = "recommends" // Advisory only, never hides an option
)

// StockStatus summarizes an option's inventory level
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLimited    StockStatus = "limited_stock"
	StockOutOfStock StockStatus = "out_of_stock"
)

// ID is a component/option/product identifier. Catalog files sometimes carry
// ids as JSON numbers and sometimes as strings; both decode to the same ID so
// downstream code never sees the distinction.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		s = ""
	}
	*id = ID(s)
	return nil
}

func (id ID) String() string { return string(id) }

// MakeID builds an ID from a numeric database id.
func MakeID(n int64) ID { return ID(strconv.FormatInt(n, 10)) }

// Option is one selectable value for a component, carrying its own price
type Option struct {
	ID      ID          `json:"id"`
	Name    string      `json:"name"`
	Price   money.Cents `json:"price"`
	InStock bool        `json:"inStock"`
}

// Component is a customizable slot of a product (e.g. Frame, Wheels)
type Component struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Options     []Option `json:"options"`
}

// Option returns the option with the given id, preserving nil for unknown ids
func (c *Component) Option(id ID) (*Option, bool) {
	for i := range c.Options {
		if c.Options[i].ID == id {
			return &c.Options[i], true
		}
	}
	return nil, false
}

// Dependency is a directional constraint between two (component, option)
// pairs: the source option's selection state affects the target option's
// availability.
type Dependency struct {
	Type              DependencyType `json:"type"`
	SourceComponentID ID             `json:"sourceComponentId"`
	SourceOptionID    ID             `json:"sourceOptionId"`
	TargetComponentID ID             `json:"targetComponentId"`
	TargetOptionID    ID             `json:"targetOptionId"`
}

// PriceRule replaces the summed price of two co-selected options with a fixed
// combination price. Not additive: when both referenced options are selected
// the rule price stands in for both individual prices.
type PriceRule struct {
	ComponentID          ID          `json:"componentId"`
	OptionID             ID          `json:"optionId"`
	DependentComponentID ID          `json:"dependentComponentId"`
	DependentOptionID    ID          `json:"dependentOptionId"`
	Price                money.Cents `json:"price"`
}

// Covers reports whether the rule references the given (component, option) pair
// on either side.
func (r *PriceRule) Covers(componentID, optionID ID) bool {
	return (r.ComponentID == componentID && r.OptionID == optionID) ||
		(r.DependentComponentID == componentID && r.DependentOptionID == optionID)
}

// Product is the full static definition of a customizable product as served
// to a customization session. Immutable once loaded.
type Product struct {
	ID           ID           `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Category     Category     `json:"category"`
	BasePrice    money.Cents  `json:"basePrice"`
	Components   []Component  `json:"components"`
	Dependencies []Dependency `json:"dependencies,omitempty"`
	PriceRules   []PriceRule  `json:"priceRules,omitempty"`
}

// Component returns the component with the given id
func (p *Product) Component(id ID) (*Component, bool) {
	for i := range p.Components {
		if p.Components[i].ID == id {
			return &p.Components[i], true
		}
	}
	return nil, false
}

// FindOption resolves a (component, option) pair. The second return is false
// when either id does not exist, which callers treat as "reference inactive"
// rather than an error.
func (p *Product) FindOption(componentID, optionID ID) (*Option, bool) {
	c, ok := p.Component(componentID)
	if !ok {
		return nil, false
	}
	return c.Option(optionID)
}

// withOptionStock returns a copy of the product with the option's in-stock
// flag set, or the product unchanged when no option flips. The original is
// never mutated; products are immutable once handed out.
func (p *Product) withOptionStock(optionID ID, inStock bool) (*Product, bool) {
	needsUpdate := false
	for i := range p.Components {
		for _, o := range p.Components[i].Options {
			if o.ID == optionID && o.InStock != inStock {
				needsUpdate = true
			}
		}
	}
	if !needsUpdate {
		return p, false
	}

	clone := *p
	clone.Components = make([]Component, len(p.Components))
	copy(clone.Components, p.Components)
	for i := range clone.Components {
		options := make([]Option, len(clone.Components[i].Options))
		copy(options, clone.Components[i].Options)
		for j := range options {
			if options[j].ID == optionID {
				options[j].InStock = inStock
			}
		}
		clone.Components[i].Options = options
	}
	return &clone, true
}

// InventoryRecord tracks stock for one option across the catalog
type InventoryRecord struct {
	OptionID          ID          `json:"optionId"`
	Quantity          int         `json:"quantity"`
	LowStockThreshold int         `json:"lowStockThreshold,omitempty"`
	Status            StockStatus `json:"status,omitempty"`
}

// DeriveStatus computes the stock status from quantity and threshold.
// A zero threshold falls back to the default of 5.
func (r *InventoryRecord) DeriveStatus() StockStatus {
	threshold := r.LowStockThreshold
	if threshold <= 0 {
		threshold = 5
	}
	switch {
	case r.Quantity <= 0:
		return StockOutOfStock
	case r.Quantity <= threshold:
		return StockLimited
	default:
		return StockInStock
	}
}

// Catalog is the loaded product definitions plus inventory, as read from a
// catalog directory.
type Catalog struct {
	Products  []*Product        `json:"products"`
	Inventory []InventoryRecord `json:"inventory,omitempty"`
}

// Categories returns the distinct categories present, in first-seen order
func (c *Catalog) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, p := range c.Products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
