package web

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/marcusbikes/storefront/pkg/catalog"
)

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if cat := r.URL.Query().Get("category"); cat != "" {
		writeJSON(w, http.StatusOK, s.store.ProductsByCategory(catalog.Category(cat)))
		return
	}
	writeJSON(w, http.StatusOK, s.store.Products())
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id := catalog.ID(mux.Vars(r)["id"])
	product, ok := s.store.Product(id)
	if !ok {
		writeError(w, http.StatusNotFound, "no such product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.store.Categories()
	if categories == nil {
		categories = []catalog.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}
