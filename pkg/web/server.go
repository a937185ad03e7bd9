package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/marcusbikes/storefront/pkg/catalog"
	"github.com/marcusbikes/storefront/pkg/lint"
	"github.com/marcusbikes/storefront/pkg/logging"
	"github.com/marcusbikes/storefront/pkg/orders"
	"github.com/marcusbikes/storefront/pkg/pubsub"
)

// Server is the storefront HTTP API: catalog browsing, customization
// sessions, cart, checkout, and the token-guarded admin surface.
type Server struct {
	router     *mux.Router
	store      *catalog.Store
	orders     *orders.Store
	publisher  *pubsub.SSEPublisher
	runner     *lint.Runner
	sessions   *sessionRegistry
	adminToken string
}

// NewServer creates a server over the given stores. An empty adminToken
// disables the admin API entirely rather than leaving it open.
func NewServer(store *catalog.Store, orderStore *orders.Store, publisher *pubsub.SSEPublisher, runner *lint.Runner, adminToken string) *Server {
	// catalog_status: replay only the latest state to new subscribers
	publisher.ConfigureTopic(pubsub.TopicCatalogStatus, pubsub.TopicConfig{
		BufferSize: 10,
		ReplayAll:  false,
	})

	s := &Server{
		router:     mux.NewRouter(),
		store:      store,
		orders:     orderStore,
		publisher:  publisher,
		runner:     runner,
		sessions:   newSessionRegistry(),
		adminToken: adminToken,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(logging.RequestIDMiddleware)

	// SSE subscription endpoints
	s.router.HandleFunc("/api/subscribe/catalog_status", s.handleSubscribeCatalogStatus).Methods("GET")
	s.router.HandleFunc("/api/subscribe/sessions/{id}", s.handleSubscribeSession).Methods("GET")

	// Catalog browsing
	s.router.HandleFunc("/api/products", s.handleProducts).Methods("GET")
	s.router.HandleFunc("/api/products/{id}", s.handleProduct).Methods("GET")
	s.router.HandleFunc("/api/categories", s.handleCategories).Methods("GET")

	// Customization sessions
	s.router.HandleFunc("/api/sessions", s.handleCreateSession).Methods("POST")
	s.router.HandleFunc("/api/sessions/{id}", s.handleSessionState).Methods("GET")
	s.router.HandleFunc("/api/sessions/{id}", s.handleCloseSession).Methods("DELETE")
	s.router.HandleFunc("/api/sessions/{id}/select", s.handleSelect).Methods("PUT")
	s.router.HandleFunc("/api/sessions/{id}/cart", s.handleCart).Methods("GET")
	s.router.HandleFunc("/api/sessions/{id}/cart", s.handleAddToCart).Methods("POST")
	s.router.HandleFunc("/api/sessions/{id}/cart/{index}", s.handleUpdateCartLine).Methods("PUT")
	s.router.HandleFunc("/api/sessions/{id}/cart/{index}", s.handleRemoveCartLine).Methods("DELETE")
	s.router.HandleFunc("/api/sessions/{id}/checkout", s.handleCheckout).Methods("POST")

	// Admin surface, token guarded
	admin := s.router.PathPrefix("/api/admin").Subrouter()
	admin.Use(s.adminAuthMiddleware)
	admin.HandleFunc("/products", s.handleAdminUpsertProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", s.handleAdminUpsertProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", s.handleAdminDeleteProduct).Methods("DELETE")
	admin.HandleFunc("/inventory", s.handleAdminInventory).Methods("GET")
	admin.HandleFunc("/inventory/{optionId}", s.handleAdminSetInventory).Methods("PUT")
	admin.HandleFunc("/orders", s.handleAdminOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}", s.handleAdminOrder).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", s.handleAdminOrderStatus).Methods("PUT")
	admin.HandleFunc("/lint", s.handleAdminLint).Methods("GET")
}

// Start starts the web server on the specified port
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("starting storefront server", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
