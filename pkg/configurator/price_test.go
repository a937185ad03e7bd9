package configurator

import (
	"testing"

	"github.com/marcusbikes/storefront/pkg/catalog"
)

// priceBike is a minimal two-component product with one combination price
// rule: full-suspension frame plus road wheels sell for 200.00 together
// instead of 100.00 + 150.00.
func priceBike() *catalog.Product {
	return &catalog.Product{
		ID:        "price-bike",
		BasePrice: 50000,
		Components: []catalog.Component{
			{ID: "frame", Name: "Frame", Options: []catalog.Option{
				{ID: "full-suspension", Price: 10000, InStock: true},
				{ID: "diamond", Price: 20000, InStock: true},
			}},
			{ID: "wheels", Name: "Wheels", Options: []catalog.Option{
				{ID: "road", Price: 15000, InStock: true},
				{ID: "fat", Price: 25000, InStock: true},
			}},
		},
		PriceRules: []catalog.PriceRule{
			{ComponentID: "frame", OptionID: "full-suspension", DependentComponentID: "wheels", DependentOptionID: "road", Price: 20000},
		},
	}
}

func TestTotalPrice_BaseOnly(t *testing.T) {
	if got := TotalPrice(priceBike(), Selections{}); got != 50000 {
		t.Errorf("TotalPrice() = %d, want 50000", got)
	}
}

func TestTotalPrice_SumsSelectedOptions(t *testing.T) {
	selections := Selections{"frame": "full-suspension", "wheels": "fat"}
	if got := TotalPrice(priceBike(), selections); got != 85000 {
		t.Errorf("TotalPrice() = %d, want 85000", got)
	}
}

func TestTotalPrice_RuleReplacesPairSum(t *testing.T) {
	// 500.00 base + 200.00 combination price, not 500 + 100 + 150
	selections := Selections{"frame": "full-suspension", "wheels": "road"}
	if got := TotalPrice(priceBike(), selections); got != 70000 {
		t.Errorf("TotalPrice() = %d, want 70000", got)
	}
}

func TestTotalPrice_RuleNeedsBothSelected(t *testing.T) {
	selections := Selections{"frame": "full-suspension"}
	if got := TotalPrice(priceBike(), selections); got != 60000 {
		t.Errorf("TotalPrice() = %d, want 60000", got)
	}
}

func TestTotalPrice_OverlappingRules_FirstWins(t *testing.T) {
	product := priceBike()
	product.Components = append(product.Components, catalog.Component{
		ID: "rim", Options: []catalog.Option{{ID: "red", Price: 2000, InStock: true}},
	})
	// Second rule shares the road wheels with the first; with all three
	// selected the first rule consumes the pair and the second never fires.
	product.PriceRules = append(product.PriceRules, catalog.PriceRule{
		ComponentID: "wheels", OptionID: "road", DependentComponentID: "rim", DependentOptionID: "red", Price: 1000,
	})

	selections := Selections{"frame": "full-suspension", "wheels": "road", "rim": "red"}

	// base 500 + rule 200 + rim 20 = 720
	if got := TotalPrice(product, selections); got != 72000 {
		t.Errorf("TotalPrice() = %d, want 72000", got)
	}
}

func TestTotalPrice_UnresolvedReferencesInactive(t *testing.T) {
	product := priceBike()
	// Rule whose first pair points at an option the product does not have
	product.PriceRules = []catalog.PriceRule{
		{ComponentID: "frame", OptionID: "carbon", DependentComponentID: "wheels", DependentOptionID: "road", Price: 100},
	}

	// A selection naming a nonexistent option contributes nothing, and the
	// rule covering it stays inactive.
	selections := Selections{"frame": "carbon", "wheels": "road"}
	if got := TotalPrice(product, selections); got != 65000 {
		t.Errorf("TotalPrice() = %d, want 65000", got)
	}
}

func TestTotalPrice_SelfPairRuleInactive(t *testing.T) {
	// A rule naming the same option on both sides must not fire: it would
	// subtract the option's price twice and could push the total negative.
	product := &catalog.Product{
		ID:        "self-pair",
		BasePrice: 0,
		Components: []catalog.Component{
			{ID: "frame", Options: []catalog.Option{{ID: "diamond", Price: 10000, InStock: true}}},
		},
		PriceRules: []catalog.PriceRule{
			{ComponentID: "frame", OptionID: "diamond", DependentComponentID: "frame", DependentOptionID: "diamond", Price: 0},
		},
	}

	got := TotalPrice(product, Selections{"frame": "diamond"})
	if got != 10000 {
		t.Errorf("TotalPrice() = %d, want 10000", got)
	}
	if got < 0 {
		t.Errorf("TotalPrice() = %d, total must never go negative for non-negative inputs", got)
	}
}

func TestAdjustedPriceFor_RuleApplies(t *testing.T) {
	product := priceBike()
	wheels, _ := product.Component("wheels")
	road, _ := wheels.Option("road")

	// Currently full-suspension + fat (850.00). Swapping to road wheels
	// naively gives 750.00, but the combination rule makes it 700.00.
	selections := Selections{"frame": "full-suspension", "wheels": "fat"}
	got := AdjustedPriceFor(product, wheels, *road, selections)

	if got.Price != 70000 {
		t.Errorf("Price = %d, want 70000", got.Price)
	}
	if !got.IsAdjusted {
		t.Error("Expected IsAdjusted = true when a rule changes the outcome")
	}
}

func TestAdjustedPriceFor_NoRule(t *testing.T) {
	product := priceBike()
	wheels, _ := product.Component("wheels")
	road, _ := wheels.Option("road")

	selections := Selections{"frame": "diamond", "wheels": "fat"}
	got := AdjustedPriceFor(product, wheels, *road, selections)

	if got.Price != 85000 {
		t.Errorf("Price = %d, want 85000", got.Price)
	}
	if got.IsAdjusted {
		t.Error("Expected IsAdjusted = false without an applicable rule")
	}
}

func TestAdjustedPriceFor_ComponentNotYetSelected(t *testing.T) {
	product := priceBike()
	wheels, _ := product.Component("wheels")
	road, _ := wheels.Option("road")

	selections := Selections{"frame": "full-suspension"}
	got := AdjustedPriceFor(product, wheels, *road, selections)

	if got.Price != 70000 {
		t.Errorf("Price = %d, want 70000", got.Price)
	}
	if !got.IsAdjusted {
		t.Error("Expected IsAdjusted = true")
	}

	// The real selections stay untouched
	if _, ok := selections["wheels"]; ok {
		t.Error("AdjustedPriceFor must not mutate the selections")
	}
}
