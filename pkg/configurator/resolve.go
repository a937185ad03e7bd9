package configurator

import (
	"github.com/marcusbikes/storefront/pkg/catalog"
)

// Selections maps componentId to the currently selected optionId for one
// in-progress customization.
type Selections map[catalog.ID]catalog.ID

// Clone returns an independent copy of the selection set
func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// AvailableOptions returns the sub-sequence of the component's options that
// are selectable under the current selections, preserving catalog order.
//
// An option is hidden when a `requires` dependency targets it and its source
// option is not selected, or when an `excludes` dependency targets it and its
// source option is selected. `recommends` dependencies never hide anything.
// Dependencies whose source references a nonexistent component or option
// never apply.
//
// A currently selected option that this computation would now hide is not
// cleared here; Validate surfaces the conflict instead.
func AvailableOptions(product *catalog.Product, component *catalog.Component, selections Selections) []catalog.Option {
	out := make([]catalog.Option, 0, len(component.Options))
	for _, opt := range component.Options {
		if optionAvailable(product, component.ID, opt.ID, selections) {
			out = append(out, opt)
		}
	}
	return out
}

// optionAvailable applies the exclusion rule for a single option
func optionAvailable(product *catalog.Product, componentID, optionID catalog.ID, selections Selections) bool {
	for _, dep := range product.Dependencies {
		if dep.TargetComponentID != componentID || dep.TargetOptionID != optionID {
			continue
		}

		// A dependency whose source does not exist in this product is
		// inactive rather than an error (degraded catalog data).
		if _, ok := product.FindOption(dep.SourceComponentID, dep.SourceOptionID); !ok {
			continue
		}

		sourceSelected := selections[dep.SourceComponentID] == dep.SourceOptionID

		switch dep.Type {
		case catalog.DependencyRequires:
			if !sourceSelected {
				return false
			}
		case catalog.DependencyExcludes:
			if sourceSelected {
				return false
			}
		case catalog.DependencyRecommends:
			// advisory only
		}
	}
	return true
}

// RecommendedOptions returns the options of the component that a `recommends`
// dependency points at from a currently selected source option. Display data
// only; never affects availability.
func RecommendedOptions(product *catalog.Product, component *catalog.Component, selections Selections) []catalog.Option {
	var out []catalog.Option
	for _, dep := range product.Dependencies {
		if dep.Type != catalog.DependencyRecommends || dep.TargetComponentID != component.ID {
			continue
		}
		if selections[dep.SourceComponentID] != dep.SourceOptionID {
			continue
		}
		if opt, ok := component.Option(dep.TargetOptionID); ok {
			out = append(out, *opt)
		}
	}
	return out
}
