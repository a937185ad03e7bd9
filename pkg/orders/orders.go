package orders

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marcusbikes/storefront/pkg/catalog"
	"github.com/marcusbikes/storefront/pkg/configurator"
	"github.com/marcusbikes/storefront/pkg/money"
)

// Status is an order's place in the fulfillment lifecycle
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

var validStatus = map[Status]bool{
	StatusPending:    true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusCompleted:  true,
	StatusCanceled:   true,
}

var (
	// ErrEmptyCart is returned when checkout is attempted with no cart lines
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotFound is returned for an unknown order id
	ErrNotFound = errors.New("no such order")
)

// Customer is the buyer information captured at checkout
type Customer struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shippingAddress"`
}

// Order is a placed cart: priced line snapshots plus buyer details. Lines
// are copies taken at checkout, so later catalog edits never change what a
// customer agreed to pay.
type Order struct {
	ID         string                  `json:"id"`
	Customer   Customer                `json:"customer"`
	Lines      []configurator.CartLine `json:"lines"`
	Total      money.Cents             `json:"total"`
	Categories []catalog.Category      `json:"categories,omitempty"` // for admin filtering
	Status     Status                  `json:"status"`
	CreatedAt  time.Time               `json:"createdAt"`
	UpdatedAt  time.Time               `json:"updatedAt"`
}

// Store keeps placed orders in memory, insertion ordered
type Store struct {
	mu     sync.RWMutex
	orders map[string]*Order
	order  []string
}

// NewStore creates an empty order store
func NewStore() *Store {
	return &Store{orders: make(map[string]*Order)}
}

// Create places an order from a cart. The cart lines and total are copied;
// clearing the cart afterwards is the caller's concern.
func (s *Store) Create(customer Customer, cart *configurator.Cart, categories []catalog.Category) (*Order, error) {
	if cart.Len() == 0 {
		return nil, ErrEmptyCart
	}

	now := time.Now().UTC()
	o := &Order{
		ID:         uuid.New().String(),
		Customer:   customer,
		Lines:      cart.Lines(),
		Total:      cart.Total(),
		Categories: categories,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
	s.order = append(s.order, o.ID)
	return o, nil
}

// Get returns the order with the given id
func (s *Store) Get(id string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

// List returns all orders in insertion order. A non-empty status filters.
func (s *Store) List(status Status) []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Order, 0, len(s.order))
	for _, id := range s.order {
		o := s.orders[id]
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out
}

// UpdateStatus moves an order to a new lifecycle status
func (s *Store) UpdateStatus(id string, status Status) (*Order, error) {
	if !validStatus[status] {
		return nil, fmt.Errorf("invalid order status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	return o, nil
}
