package lint

import (
	"fmt"

	"github.com/marcusbikes/storefront/pkg/catalog"
	"github.com/marcusbikes/storefront/pkg/rulegraph"
)

// Severity grades a catalog issue
type Severity string

const (
	SeverityWarning Severity = "warning" // degrades gracefully at runtime, but the catalog author should fix it
	SeverityError   Severity = "error"   // the product cannot behave as intended
)

// Issue is one problem found in a catalog
type Issue struct {
	ProductID catalog.ID `json:"productId"`
	Check     string     `json:"check"`
	Severity  Severity   `json:"severity"`
	Message   string     `json:"message"`
}

// CheckProduct runs all per-product checks
func CheckProduct(p *catalog.Product) []Issue {
	var issues []Issue
	issues = append(issues, checkEmptyComponents(p)...)
	issues = append(issues, checkDependencyRefs(p)...)
	issues = append(issues, checkPriceRuleRefs(p)...)
	issues = append(issues, checkOverlappingRules(p)...)
	issues = append(issues, checkRequiresCycles(p)...)
	return issues
}

// CheckCatalog runs all checks over a loaded catalog
func CheckCatalog(cat *catalog.Catalog) []Issue {
	var issues []Issue

	seen := make(map[catalog.ID]bool)
	for _, p := range cat.Products {
		if seen[p.ID] {
			issues = append(issues, Issue{
				ProductID: p.ID,
				Check:     "duplicate-product",
				Severity:  SeverityError,
				Message:   fmt.Sprintf("product id %s appears in more than one file; the last one loaded wins", p.ID),
			})
		}
		seen[p.ID] = true

		issues = append(issues, CheckProduct(p)...)
	}

	issues = append(issues, checkInventoryRefs(cat)...)
	return issues
}

// checkEmptyComponents flags components with no options. The storefront
// renders them as "no available options", so a purchasable product must not
// ship this way.
func checkEmptyComponents(p *catalog.Product) []Issue {
	var issues []Issue
	for _, c := range p.Components {
		if len(c.Options) == 0 {
			issues = append(issues, Issue{
				ProductID: p.ID,
				Check:     "empty-component",
				Severity:  SeverityWarning,
				Message:   fmt.Sprintf("component %s (%s) has no options", c.ID, c.Name),
			})
		}
	}
	return issues
}

// checkDependencyRefs flags dependencies pointing at ids the product does
// not have. The resolver treats them as inactive, which usually means the
// constraint the author wanted is silently missing.
func checkDependencyRefs(p *catalog.Product) []Issue {
	var issues []Issue
	for _, dep := range p.Dependencies {
		if _, ok := p.FindOption(dep.SourceComponentID, dep.SourceOptionID); !ok {
			issues = append(issues, Issue{
				ProductID: p.ID,
				Check:     "unresolved-dependency",
				Severity:  SeverityWarning,
				Message: fmt.Sprintf("%s dependency source %s/%s does not exist; dependency is inactive",
					dep.Type, dep.SourceComponentID, dep.SourceOptionID),
			})
		}
		if _, ok := p.FindOption(dep.TargetComponentID, dep.TargetOptionID); !ok {
			issues = append(issues, Issue{
				ProductID: p.ID,
				Check:     "unresolved-dependency",
				Severity:  SeverityWarning,
				Message: fmt.Sprintf("%s dependency target %s/%s does not exist; dependency is inactive",
					dep.Type, dep.TargetComponentID, dep.TargetOptionID),
			})
		}
	}
	return issues
}

// checkPriceRuleRefs flags price rules referencing missing options
func checkPriceRuleRefs(p *catalog.Product) []Issue {
	var issues []Issue
	for _, rule := range p.PriceRules {
		if _, ok := p.FindOption(rule.ComponentID, rule.OptionID); !ok {
			issues = append(issues, Issue{
				ProductID: p.ID,
				Check:     "unresolved-price-rule",
				Severity:  SeverityWarning,
				Message: fmt.Sprintf("price rule references %s/%s which does not exist; rule is inactive",
					rule.ComponentID, rule.OptionID),
			})
		}
		if _, ok := p.FindOption(rule.DependentComponentID, rule.DependentOptionID); !ok {
			issues = append(issues, Issue{
				ProductID: p.ID,
				Check:     "unresolved-price-rule",
				Severity:  SeverityWarning,
				Message: fmt.Sprintf("price rule references %s/%s which does not exist; rule is inactive",
					rule.DependentComponentID, rule.DependentOptionID),
			})
		}
	}
	return issues
}

// checkOverlappingRules flags pairs of price rules that cover a common
// (component, option) pair. The evaluator resolves the overlap
// deterministically (first rule in list order wins), but a catalog relying
// on that ordering is fragile. A rule naming the same pair on both sides is
// inactive at evaluation time and flagged here too.
func checkOverlappingRules(p *catalog.Product) []Issue {
	var issues []Issue
	for i := range p.PriceRules {
		r := &p.PriceRules[i]
		if r.ComponentID == r.DependentComponentID && r.OptionID == r.DependentOptionID {
			issues = append(issues, Issue{
				ProductID: p.ID,
				Check:     "self-referential-price-rule",
				Severity:  SeverityWarning,
				Message: fmt.Sprintf("price rule %d names %s/%s on both sides; rule is inactive",
					i, r.ComponentID, r.OptionID),
			})
		}
	}
	for i := range p.PriceRules {
		for j := i + 1; j < len(p.PriceRules); j++ {
			a, b := &p.PriceRules[i], &p.PriceRules[j]
			if a.Covers(b.ComponentID, b.OptionID) || a.Covers(b.DependentComponentID, b.DependentOptionID) {
				issues = append(issues, Issue{
					ProductID: p.ID,
					Check:     "overlapping-price-rules",
					Severity:  SeverityWarning,
					Message: fmt.Sprintf("price rules %d and %d cover a common option; rule %d wins when both apply",
						i, j, i),
				})
			}
		}
	}
	return issues
}

// checkRequiresCycles flags sets of options whose requires dependencies form
// a cycle. None of them can ever become selectable from an empty selection.
func checkRequiresCycles(p *catalog.Product) []Issue {
	var issues []Issue
	for _, cycle := range rulegraph.Build(p).Cycles() {
		issues = append(issues, Issue{
			ProductID: p.ID,
			Check:     "requires-cycle",
			Severity:  SeverityError,
			Message:   fmt.Sprintf("requires dependencies form a cycle over %d options: %s", len(cycle), formatCycle(cycle)),
		})
	}
	return issues
}

// checkInventoryRefs flags inventory records for unknown options
func checkInventoryRefs(cat *catalog.Catalog) []Issue {
	known := make(map[catalog.ID]bool)
	for _, p := range cat.Products {
		for _, c := range p.Components {
			for _, o := range c.Options {
				known[o.ID] = true
			}
		}
	}

	var issues []Issue
	for _, rec := range cat.Inventory {
		if !known[rec.OptionID] {
			issues = append(issues, Issue{
				Check:    "unresolved-inventory",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("inventory record for option %s matches no catalog option", rec.OptionID),
			})
		}
	}
	return issues
}

func formatCycle(cycle []rulegraph.OptionRef) string {
	s := ""
	for i, ref := range cycle {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s/%s", ref.ComponentID, ref.OptionID)
	}
	return s
}

// Errors reports whether any issue has error severity
func Errors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
