package pubsub

import (
	"context"
	"encoding/json"

	"github.com/marcusbikes/storefront/pkg/money"
)

// Event represents a pub/sub event
type Event struct {
	Topic   string          `json:"topic"`   // Subscription topic (e.g., "catalog_status", "session/<id>")
	Type    string          `json:"type"`    // Event type (e.g., "loading", "ready", "selection")
	Data    json.RawMessage `json:"data"`    // Event payload
	Version int             `json:"version"` // Version number for ordering
}

// Subscription represents a client subscription to a topic
type Subscription interface {
	// Topic returns the subscription topic
	Topic() string

	// Events returns a channel for receiving events
	Events() <-chan Event

	// Close closes the subscription
	Close() error
}

// Publisher manages pub/sub subscriptions and event publishing
type Publisher interface {
	// Subscribe creates a new subscription to a topic
	// Context cancellation will close the subscription
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic
	Publish(topic string, eventType string, data interface{}) error

	// Close shuts down the publisher and all subscriptions
	Close() error
}

// TopicCatalogStatus carries catalog load/reload pipeline progress
const TopicCatalogStatus = "catalog_status"

// SessionTopic returns the per-session topic carrying live price and
// validation updates for one customization session.
func SessionTopic(sessionID string) string {
	return "session/" + sessionID
}

// CatalogStatus reports the state of the catalog load pipeline
type CatalogStatus struct {
	State    string `json:"state"`    // loading, linting, ready, error
	Message  string `json:"message"`  // Human-readable status message
	Step     int    `json:"step"`     // Current step number (1-based)
	Total    int    `json:"total"`    // Total number of steps
	Products int    `json:"products"` // Products loaded so far (0 until ready)
	Issues   int    `json:"issues"`   // Lint issues found (0 until linted)
}

// SessionUpdate is pushed after every mutation of a customization session so
// the storefront can keep the price panel live without polling.
type SessionUpdate struct {
	SessionID string      `json:"sessionId"`
	Price     money.Cents `json:"price"`
	Valid     bool        `json:"valid"`
	Message   string      `json:"message,omitempty"`
	CartCount int         `json:"cartCount"`
	CartTotal money.Cents `json:"cartTotal"`
}
