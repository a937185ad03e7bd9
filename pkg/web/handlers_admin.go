package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/marcusbikes/storefront/pkg/catalog"
	"github.com/marcusbikes/storefront/pkg/lint"
	"github.com/marcusbikes/storefront/pkg/logging"
	"github.com/marcusbikes/storefront/pkg/orders"
)

// adminAuthMiddleware guards the admin surface with a bearer token. With no
// token configured the whole surface is disabled.
func (s *Server) adminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == "" {
			writeError(w, http.StatusServiceUnavailable, "admin API is disabled")
			return
		}

		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token != s.adminToken {
			logging.WarnContext(r.Context(), "admin auth rejected", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "invalid admin token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleAdminUpsertProduct(w http.ResponseWriter, r *http.Request) {
	var product catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, "invalid product definition")
		return
	}

	// On PUT the path id wins over whatever the body says
	if id := mux.Vars(r)["id"]; id != "" {
		product.ID = catalog.ID(id)
	}

	if err := s.store.Upsert(&product); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logging.InfoContext(r.Context(), "product upserted", "product", product.ID.String())
	writeJSON(w, http.StatusOK, &product)
}

func (s *Server) handleAdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := catalog.ID(mux.Vars(r)["id"])
	if err := s.store.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	logging.InfoContext(r.Context(), "product deleted", "product", id.String())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminInventory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Inventory())
}

type setInventoryRequest struct {
	Quantity          int  `json:"quantity"`
	LowStockThreshold *int `json:"lowStockThreshold,omitempty"`
}

func (s *Server) handleAdminSetInventory(w http.ResponseWriter, r *http.Request) {
	optionID := catalog.ID(mux.Vars(r)["optionId"])

	var req setInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "quantity must not be negative")
		return
	}

	threshold := 0 // zero means the default kicks in
	if req.LowStockThreshold != nil {
		if *req.LowStockThreshold < 0 {
			writeError(w, http.StatusBadRequest, "lowStockThreshold must not be negative")
			return
		}
		threshold = *req.LowStockThreshold
	}

	rec := s.store.SetInventory(optionID, req.Quantity, threshold)
	logging.InfoContext(r.Context(), "inventory updated",
		"option", optionID.String(), "quantity", rec.Quantity, "status", string(rec.Status))
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	status := orders.Status(r.URL.Query().Get("status"))
	writeJSON(w, http.StatusOK, s.orders.List(status))
}

func (s *Server) handleAdminOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.orders.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type orderStatusRequest struct {
	Status orders.Status `json:"status"`
}

func (s *Server) handleAdminOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := s.orders.UpdateStatus(mux.Vars(r)["id"], req.Status)
	if errors.Is(err, orders.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logging.InfoContext(r.Context(), "order status updated", "orderID", order.ID, "status", string(order.Status))
	writeJSON(w, http.StatusOK, order)
}

type lintResponse struct {
	Issues    []lint.Issue `json:"issues"`
	HasErrors bool         `json:"hasErrors"`
}

func (s *Server) handleAdminLint(w http.ResponseWriter, r *http.Request) {
	issues := s.runner.Issues()
	if issues == nil {
		issues = []lint.Issue{}
	}
	writeJSON(w, http.StatusOK, lintResponse{
		Issues:    issues,
		HasErrors: lint.Errors(issues),
	})
}
