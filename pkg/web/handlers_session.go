package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/marcusbikes/storefront/pkg/catalog"
	"github.com/marcusbikes/storefront/pkg/configurator"
	"github.com/marcusbikes/storefront/pkg/logging"
	"github.com/marcusbikes/storefront/pkg/orders"
	"github.com/marcusbikes/storefront/pkg/pubsub"
)

type createSessionRequest struct {
	ProductID catalog.ID `json:"productId"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, ok := s.store.Product(req.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, "no such product")
		return
	}

	id, entry := s.sessions.create()
	entry.mu.Lock()
	entry.session.SetProduct(product)
	state := buildState(id, entry.session)
	entry.mu.Unlock()

	logging.InfoContext(r.Context(), "session created", "sessionID", id, "product", product.ID.String())
	writeJSON(w, http.StatusCreated, state)
}

// withSession runs fn with the session entry locked, handling the 404
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(id string, session *configurator.Session)) {
	id := mux.Vars(r)["id"]
	entry, ok := s.sessions.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "no such session")
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(id, entry.session)
}

func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(id string, session *configurator.Session) {
		writeJSON(w, http.StatusOK, buildState(id, session))
	})
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.sessions.remove(id) {
		writeError(w, http.StatusNotFound, "no such session")
		return
	}
	s.publisher.DropTopic(pubsub.SessionTopic(id))
	w.WriteHeader(http.StatusNoContent)
}

type selectRequest struct {
	ComponentID catalog.ID `json:"componentId"`
	OptionID    catalog.ID `json:"optionId"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ComponentID == "" || req.OptionID == "" {
		writeError(w, http.StatusBadRequest, "componentId and optionId are required")
		return
	}

	s.withSession(w, r, func(id string, session *configurator.Session) {
		if session.Product() == nil {
			writeError(w, http.StatusConflict, "session has no active product")
			return
		}

		session.SelectOption(req.ComponentID, req.OptionID)
		state := buildState(id, session)
		s.publishSessionUpdate(id, "selection", state)
		writeJSON(w, http.StatusOK, state)
	})
}

type cartResponse struct {
	Lines []configurator.CartLine `json:"lines"`
	Total string                  `json:"total"`
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(id string, session *configurator.Session) {
		writeJSON(w, http.StatusOK, cartResponse{
			Lines: session.Cart().Lines(),
			Total: session.Cart().Total().String(),
		})
	})
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(id string, session *configurator.Session) {
		line, err := session.AddToCart()
		switch {
		case errors.Is(err, configurator.ErrNoProduct):
			writeError(w, http.StatusConflict, "session has no active product")
			return
		case errors.Is(err, configurator.ErrNotValid):
			// The storefront disables the button; refuse independently.
			writeError(w, http.StatusUnprocessableEntity, session.Validate().Message)
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		state := buildState(id, session)
		s.publishSessionUpdate(id, "cart", state)
		logging.InfoContext(r.Context(), "added to cart",
			"sessionID", id, "product", line.ProductID.String(), "unitPrice", line.UnitPrice.String())
		writeJSON(w, http.StatusCreated, state)
	})
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) handleUpdateCartLine(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart index")
		return
	}

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.withSession(w, r, func(id string, session *configurator.Session) {
		err := session.Cart().UpdateQuantity(index, req.Quantity)
		switch {
		case errors.Is(err, configurator.ErrNoSuchLine):
			writeError(w, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, configurator.ErrBadQuantity):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		state := buildState(id, session)
		s.publishSessionUpdate(id, "cart", state)
		writeJSON(w, http.StatusOK, state)
	})
}

func (s *Server) handleRemoveCartLine(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart index")
		return
	}

	s.withSession(w, r, func(id string, session *configurator.Session) {
		if err := session.Cart().Remove(index); err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}

		state := buildState(id, session)
		s.publishSessionUpdate(id, "cart", state)
		writeJSON(w, http.StatusOK, state)
	})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var customer orders.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if customer.Name == "" || customer.Email == "" || customer.ShippingAddress == "" {
		writeError(w, http.StatusBadRequest, "name, email and shippingAddress are required")
		return
	}

	s.withSession(w, r, func(id string, session *configurator.Session) {
		categories := s.lineCategories(session.Cart().Lines())

		order, err := s.orders.Create(customer, session.Cart(), categories)
		if errors.Is(err, orders.ErrEmptyCart) {
			writeError(w, http.StatusUnprocessableEntity, "cart is empty")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		session.Cart().Clear()
		s.publishSessionUpdate(id, "checkout", buildState(id, session))
		logging.InfoContext(r.Context(), "order placed",
			"sessionID", id, "orderID", order.ID, "total", order.Total.String())
		writeJSON(w, http.StatusCreated, order)
	})
}

// lineCategories collects the distinct categories of the carted products
func (s *Server) lineCategories(lines []configurator.CartLine) []catalog.Category {
	seen := make(map[catalog.Category]bool)
	var out []catalog.Category
	for _, line := range lines {
		if p, ok := s.store.Product(line.ProductID); ok && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

func (s *Server) publishSessionUpdate(id, eventType string, state sessionState) {
	update := pubsub.SessionUpdate{
		SessionID: id,
		Price:     state.Price,
		Valid:     state.Validation.Valid,
		Message:   state.Validation.Message,
		CartCount: state.CartCount,
		CartTotal: state.CartTotal,
	}
	if err := s.publisher.Publish(pubsub.SessionTopic(id), eventType, update); err != nil {
		logging.Warn("failed to publish session update", "sessionID", id, "error", err)
	}
}
