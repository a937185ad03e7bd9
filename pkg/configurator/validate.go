package configurator

import (
	"fmt"

	"github.com/marcusbikes/storefront/pkg/catalog"
)

// Validation is the result of checking a selection set for completeness and
// consistency. Message is empty when Valid.
type Validation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Validate reports whether the current selections form a purchasable
// configuration: every component has a selection, every selected option
// actually belongs to its component, and no selected option is hidden by a
// dependency given the full selection set.
func Validate(product *catalog.Product, selections Selections) Validation {
	for i := range product.Components {
		component := &product.Components[i]

		optionID, ok := selections[component.ID]
		if !ok {
			return Validation{Message: "Please select an option for every component"}
		}

		if _, ok := component.Option(optionID); !ok {
			return Validation{Message: fmt.Sprintf("Selected option for %s is not available", component.Name)}
		}

		if !optionAvailable(product, component.ID, optionID, selections) {
			return Validation{Message: fmt.Sprintf("Selected option for %s conflicts with another selection", component.Name)}
		}
	}

	return Validation{Valid: true}
}
