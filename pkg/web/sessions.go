package web

import (
	"sync"

	"github.com/google/uuid"
	"github.com/marcusbikes/storefront/pkg/catalog"
	"github.com/marcusbikes/storefront/pkg/configurator"
	"github.com/marcusbikes/storefront/pkg/money"
)

// sessionEntry wraps one customization session. The core session is
// single-threaded by contract; the per-entry mutex serializes the HTTP
// handlers so that contract holds.
type sessionEntry struct {
	mu      sync.Mutex
	session *configurator.Session
}

// sessionRegistry holds all live customization sessions keyed by uuid.
// Sessions are independent; two customers never share state.
type sessionRegistry struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{entries: make(map[string]*sessionEntry)}
}

func (r *sessionRegistry) create() (string, *sessionEntry) {
	id := uuid.New().String()
	entry := &sessionEntry{session: configurator.NewSession()}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = entry
	return id, entry
}

func (r *sessionRegistry) get(id string) (*sessionEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[id]
	return entry, ok
}

func (r *sessionRegistry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	return true
}

// optionView is one selectable option with its what-if price
type optionView struct {
	catalog.Option
	AdjustedPrice money.Cents `json:"adjustedPrice"`
	IsAdjusted    bool        `json:"isAdjusted"`
}

// componentView is one component with only its currently available options
type componentView struct {
	ID          catalog.ID   `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Selected    catalog.ID   `json:"selected,omitempty"`
	Options     []optionView `json:"options"`
	Recommended []catalog.ID `json:"recommended,omitempty"`
}

// sessionState is the full session snapshot the storefront renders from
type sessionState struct {
	SessionID  string                  `json:"sessionId"`
	ProductID  catalog.ID              `json:"productId,omitempty"`
	Components []componentView         `json:"components,omitempty"`
	Selections configurator.Selections `json:"selections"`
	Price      money.Cents             `json:"price"`
	Validation configurator.Validation `json:"validation"`
	CartCount  int                     `json:"cartCount"`
	CartTotal  money.Cents             `json:"cartTotal"`
}

// buildState assembles the session snapshot. Caller holds the entry lock.
func buildState(id string, session *configurator.Session) sessionState {
	state := sessionState{
		SessionID:  id,
		Selections: session.Selections(),
		Price:      session.TotalPrice(),
		Validation: session.Validate(),
		CartCount:  session.Cart().Len(),
		CartTotal:  session.Cart().Total(),
	}

	product := session.Product()
	if product == nil {
		return state
	}
	state.ProductID = product.ID

	selections := session.Selections()
	for i := range product.Components {
		component := &product.Components[i]
		view := componentView{
			ID:          component.ID,
			Name:        component.Name,
			Description: component.Description,
			Selected:    selections[component.ID],
		}

		available := configurator.AvailableOptions(product, component, selections)
		for _, opt := range available {
			adjusted := configurator.AdjustedPriceFor(product, component, opt, selections)
			view.Options = append(view.Options, optionView{
				Option:        opt,
				AdjustedPrice: adjusted.Price,
				IsAdjusted:    adjusted.IsAdjusted,
			})
		}

		for _, opt := range configurator.RecommendedOptions(product, component, selections) {
			view.Recommended = append(view.Recommended, opt.ID)
		}

		state.Components = append(state.Components, view)
	}

	return state
}
