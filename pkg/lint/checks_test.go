package lint

import (
	"testing"

	"github.com/marcusbikes/storefront/pkg/catalog"
)

func checkProductFixture() *catalog.Product {
	return &catalog.Product{
		ID:   "bike",
		Name: "Bike",
		Components: []catalog.Component{
			{ID: "frame", Name: "Frame", Options: []catalog.Option{{ID: "a"}, {ID: "b"}}},
			{ID: "wheels", Name: "Wheels", Options: []catalog.Option{{ID: "c"}, {ID: "d"}}},
		},
	}
}

func countCheck(issues []Issue, check string) int {
	n := 0
	for _, issue := range issues {
		if issue.Check == check {
			n++
		}
	}
	return n
}

func TestCheckProduct_Clean(t *testing.T) {
	if issues := CheckProduct(checkProductFixture()); len(issues) != 0 {
		t.Errorf("Expected no issues, got %v", issues)
	}
}

func TestCheckProduct_EmptyComponent(t *testing.T) {
	p := checkProductFixture()
	p.Components = append(p.Components, catalog.Component{ID: "rim", Name: "Rim color"})

	issues := CheckProduct(p)
	if countCheck(issues, "empty-component") != 1 {
		t.Errorf("Expected 1 empty-component issue, got %v", issues)
	}
}

func TestCheckProduct_UnresolvedDependency(t *testing.T) {
	p := checkProductFixture()
	p.Dependencies = []catalog.Dependency{
		{
			Type:              catalog.DependencyRequires,
			SourceComponentID: "frame", SourceOptionID: "ghost",
			TargetComponentID: "wheels", TargetOptionID: "also-ghost",
		},
	}

	issues := CheckProduct(p)
	// Both ends unresolved, one issue each
	if countCheck(issues, "unresolved-dependency") != 2 {
		t.Errorf("Expected 2 unresolved-dependency issues, got %v", issues)
	}
}

func TestCheckProduct_UnresolvedPriceRule(t *testing.T) {
	p := checkProductFixture()
	p.PriceRules = []catalog.PriceRule{
		{ComponentID: "frame", OptionID: "ghost", DependentComponentID: "wheels", DependentOptionID: "c", Price: 100},
	}

	issues := CheckProduct(p)
	if countCheck(issues, "unresolved-price-rule") != 1 {
		t.Errorf("Expected 1 unresolved-price-rule issue, got %v", issues)
	}
}

func TestCheckProduct_OverlappingRules(t *testing.T) {
	p := checkProductFixture()
	p.PriceRules = []catalog.PriceRule{
		{ComponentID: "frame", OptionID: "a", DependentComponentID: "wheels", DependentOptionID: "c", Price: 100},
		{ComponentID: "wheels", OptionID: "c", DependentComponentID: "frame", DependentOptionID: "b", Price: 200},
	}

	issues := CheckProduct(p)
	if countCheck(issues, "overlapping-price-rules") != 1 {
		t.Errorf("Expected 1 overlapping-price-rules issue, got %v", issues)
	}
}

func TestCheckProduct_SelfReferentialPriceRule(t *testing.T) {
	p := checkProductFixture()
	p.PriceRules = []catalog.PriceRule{
		{ComponentID: "frame", OptionID: "a", DependentComponentID: "frame", DependentOptionID: "a", Price: 50},
	}

	issues := CheckProduct(p)
	if countCheck(issues, "self-referential-price-rule") != 1 {
		t.Errorf("Expected 1 self-referential-price-rule issue, got %v", issues)
	}
}

func TestCheckProduct_RequiresCycle(t *testing.T) {
	p := checkProductFixture()
	p.Dependencies = []catalog.Dependency{
		{
			Type:              catalog.DependencyRequires,
			SourceComponentID: "frame", SourceOptionID: "a",
			TargetComponentID: "wheels", TargetOptionID: "c",
		},
		{
			Type:              catalog.DependencyRequires,
			SourceComponentID: "wheels", SourceOptionID: "c",
			TargetComponentID: "frame", TargetOptionID: "a",
		},
	}

	issues := CheckProduct(p)
	if countCheck(issues, "requires-cycle") != 1 {
		t.Fatalf("Expected 1 requires-cycle issue, got %v", issues)
	}
	if !Errors(issues) {
		t.Error("A requires cycle must be an error")
	}
}

func TestCheckCatalog_DuplicateProduct(t *testing.T) {
	cat := &catalog.Catalog{
		Products: []*catalog.Product{checkProductFixture(), checkProductFixture()},
	}

	issues := CheckCatalog(cat)
	if countCheck(issues, "duplicate-product") != 1 {
		t.Errorf("Expected 1 duplicate-product issue, got %v", issues)
	}
}

func TestCheckCatalog_UnresolvedInventory(t *testing.T) {
	cat := &catalog.Catalog{
		Products: []*catalog.Product{checkProductFixture()},
		Inventory: []catalog.InventoryRecord{
			{OptionID: "a", Quantity: 3},
			{OptionID: "nonexistent", Quantity: 1},
		},
	}

	issues := CheckCatalog(cat)
	if countCheck(issues, "unresolved-inventory") != 1 {
		t.Errorf("Expected 1 unresolved-inventory issue, got %v", issues)
	}
}

func TestErrors(t *testing.T) {
	if Errors([]Issue{{Severity: SeverityWarning}}) {
		t.Error("Warnings alone must not count as errors")
	}
	if !Errors([]Issue{{Severity: SeverityWarning}, {Severity: SeverityError}}) {
		t.Error("Expected Errors() = true with an error present")
	}
}
