package configurator

import (
	"github.com/marcusbikes/storefront/pkg/catalog"
	"github.com/marcusbikes/storefront/pkg/money"
)

// TotalPrice computes the live total for the current selections: the
// product's base price plus each selected option's price, with applicable
// price rules replacing the summed prices of the option pairs they cover.
//
// A rule is applicable when both its (component, option) pairs are currently
// selected. Rules are applied in catalog list order and a pair consumed by
// one rule is skipped by later overlapping rules, so evaluation is
// deterministic regardless of how the catalog was authored. Selections that
// do not resolve to a real option contribute nothing; Validate reports them.
func TotalPrice(product *catalog.Product, selections Selections) money.Cents {
	total := product.BasePrice

	for componentID, optionID := range selections {
		if opt, ok := product.FindOption(componentID, optionID); ok {
			total += opt.Price
		}
	}

	consumed := make(map[pairKey]bool)
	for _, rule := range product.PriceRules {
		first := pairKey{rule.ComponentID, rule.OptionID}
		second := pairKey{rule.DependentComponentID, rule.DependentOptionID}

		if first == second {
			// A rule naming the same pair twice cannot stand in for two
			// prices; inactive, like unresolved references.
			continue
		}
		if selections[first.component] != first.option || selections[second.component] != second.option {
			continue
		}
		if consumed[first] || consumed[second] {
			continue
		}

		firstOpt, ok1 := product.FindOption(first.component, first.option)
		secondOpt, ok2 := product.FindOption(second.component, second.option)
		if !ok1 || !ok2 {
			// Rule references options the product no longer has; inactive.
			continue
		}

		total -= firstOpt.Price
		total -= secondOpt.Price
		total += rule.Price
		consumed[first] = true
		consumed[second] = true
	}

	return total
}

type pairKey struct {
	component catalog.ID
	option    catalog.ID
}

// AdjustedPrice is the result of a what-if evaluation for one option
type AdjustedPrice struct {
	Price      money.Cents `json:"price"`
	IsAdjusted bool        `json:"isAdjusted"`
}

// AdjustedPriceFor computes what TotalPrice would become if the component's
// selection were hypothetically changed to the given option, all other
// selections held fixed. IsAdjusted reports whether a price rule makes that
// hypothetical total differ from the naive swap (current total minus the
// currently selected option's own price plus this option's own price), so
// the UI can flag combination pricing. The real selections are not mutated.
func AdjustedPriceFor(product *catalog.Product, component *catalog.Component, option catalog.Option, selections Selections) AdjustedPrice {
	hypothetical := selections.Clone()
	hypothetical[component.ID] = option.ID
	price := TotalPrice(product, hypothetical)

	naive := TotalPrice(product, selections) + option.Price
	if current, ok := product.FindOption(component.ID, selections[component.ID]); ok {
		naive -= current.Price
	}

	return AdjustedPrice{
		Price:      price,
		IsAdjusted: price != naive,
	}
}
