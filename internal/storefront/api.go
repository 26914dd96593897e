package storefront

import (
	"net/http"

	"go.uber.org/zap"

	"TeeShop/internal/render"
	"TeeShop/pkg/kit"
)

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Catalog.ListSortedByID(r.Context())
	if err != nil {
		s.logger().Error("list products failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, render.BuildCatalog(products))
}

func (s *Server) apiCart(w http.ResponseWriter, r *http.Request) {
	s.writeCartView(w, r, http.StatusOK)
}

func (s *Server) apiAdd(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	repo, log := s.repo(r)
	_, added, err := s.Carts.AddOne(r.Context(), repo, id)
	if err != nil {
		log.Error("add to cart failed", zap.Error(err), zap.Int("product_id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !added {
		kit.WriteError(w, r, http.StatusNotFound, "unknown product", map[string]any{"id": id})
		return
	}
	s.writeCartView(w, r, http.StatusOK)
}

func (s *Server) apiChange(delta int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := productID(r)
		if !ok {
			kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
			return
		}

		repo, log := s.repo(r)
		if err := s.Carts.ChangeQuantity(r.Context(), repo, id, delta); err != nil {
			log.Error("change quantity failed", zap.Error(err), zap.Int("product_id", id))
			kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
			return
		}
		s.writeCartView(w, r, http.StatusOK)
	}
}

func (s *Server) apiRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	repo, log := s.repo(r)
	if err := s.Carts.Remove(r.Context(), repo, id); err != nil {
		log.Error("remove from cart failed", zap.Error(err), zap.Int("product_id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	s.writeCartView(w, r, http.StatusOK)
}

func (s *Server) writeCartView(w http.ResponseWriter, r *http.Request, status int) {
	v, log, err := s.cartView(r)
	if err != nil {
		log.Error("build cart failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, status, v)
}
