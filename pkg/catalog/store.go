package catalog

import (
	"fmt"
	"sync"
)

// Store holds the live catalog served to customization sessions and mutated
// by the admin API. Reads vastly outnumber writes; a RWMutex is enough.
type Store struct {
	mu        sync.RWMutex
	products  map[ID]*Product
	order     []ID // insertion order for stable listings
	inventory map[ID]InventoryRecord
}

// NewStore creates an empty catalog store
func NewStore() *Store {
	return &Store{
		products:  make(map[ID]*Product),
		inventory: make(map[ID]InventoryRecord),
	}
}

// Replace swaps in a freshly loaded catalog atomically. Used at startup and
// on watcher-triggered reloads so sessions never observe a half-applied
// catalog.
func (s *Store) Replace(cat *Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[ID]*Product, len(cat.Products))
	s.order = s.order[:0]
	for _, p := range cat.Products {
		if _, exists := s.products[p.ID]; !exists {
			s.order = append(s.order, p.ID)
		}
		s.products[p.ID] = p
	}

	s.inventory = make(map[ID]InventoryRecord, len(cat.Inventory))
	for _, r := range cat.Inventory {
		s.inventory[r.OptionID] = r
	}
}

// Product returns the product with the given id
func (s *Store) Product(id ID) (*Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	return p, ok
}

// Products returns all products in insertion order
func (s *Store) Products() []*Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Product, 0, len(s.order))
	for _, id := range s.order {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// ProductsByCategory returns products of one category, insertion order preserved
func (s *Store) ProductsByCategory(cat Category) []*Product {
	var out []*Product
	for _, p := range s.Products() {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns distinct categories in first-seen order
func (s *Store) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, p := range s.Products() {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Upsert adds or replaces a product definition (admin mutation)
func (s *Store) Upsert(p *Product) error {
	if p.ID == "" {
		return fmt.Errorf("product has no id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.products[p.ID] = p
	return nil
}

// Delete removes a product definition (admin mutation)
func (s *Store) Delete(id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return fmt.Errorf("no product %s", id)
	}
	delete(s.products, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Inventory returns all inventory records keyed by option id
func (s *Store) Inventory() map[ID]InventoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[ID]InventoryRecord, len(s.inventory))
	for id, r := range s.inventory {
		out[id] = r
	}
	return out
}

// SetInventory updates one option's stock level and propagates the derived
// in-stock flag to every product option with that id. Products are swapped
// copy-on-write: pointers handed out earlier keep their snapshot, so live
// sessions never observe a mutation.
func (s *Store) SetInventory(optionID ID, quantity, lowStockThreshold int) InventoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := InventoryRecord{
		OptionID:          optionID,
		Quantity:          quantity,
		LowStockThreshold: lowStockThreshold,
	}
	rec.Status = rec.DeriveStatus()
	s.inventory[optionID] = rec

	inStock := rec.Status != StockOutOfStock
	for id, p := range s.products {
		if updated, changed := p.withOptionStock(optionID, inStock); changed {
			s.products[id] = updated
		}
	}

	return rec
}
