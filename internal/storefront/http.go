package storefront

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"TeeShop/internal/cart"
	"TeeShop/internal/catalog"
	"TeeShop/internal/render"
	"TeeShop/pkg/kit"
)

type Server struct {
	Catalog catalog.Store
	Carts   *cart.Service
	Slot    cart.Slot
	Pages   render.Renderer
	Log     *zap.Logger

	Now func() time.Time
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.catalogPage)
	r.Get("/cart", s.cartPage)

	r.Post("/cart/items/{id}", s.formAdd)
	r.Post("/cart/items/{id}/increment", s.formChange(1))
	r.Post("/cart/items/{id}/decrement", s.formChange(-1))
	r.Post("/cart/items/{id}/remove", s.formRemove)

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/products", s.apiProducts)
		ar.Get("/cart", s.apiCart)
		ar.Post("/cart/items/{id}", s.apiAdd)
		ar.Post("/cart/items/{id}/increment", s.apiChange(1))
		ar.Post("/cart/items/{id}/decrement", s.apiChange(-1))
		ar.Delete("/cart/items/{id}", s.apiRemove)
	})

	return r
}

func (s *Server) Ready(ctx context.Context) error {
	if err := s.Catalog.Ping(ctx); err != nil {
		return err
	}
	return s.Slot.Ping(ctx)
}

func (s *Server) repo(r *http.Request) (*cart.BlobRepository, *zap.Logger) {
	profile, _ := ProfileFromContext(r.Context())
	log := s.logger().With(zap.String("profile", profile))
	return cart.NewBlobRepository(s.Slot, cart.ProfileKey(profile), log), log
}

func (s *Server) catalogPage(w http.ResponseWriter, r *http.Request) {
	repo, log := s.repo(r)

	products, err := s.Catalog.ListSortedByID(r.Context())
	if err != nil {
		s.serverError(w, log, "list products failed", err)
		return
	}
	c, err := repo.Load(r.Context())
	if err != nil {
		s.serverError(w, log, "load cart failed", err)
		return
	}

	v := render.BuildCatalog(products)
	s.writePage(w, log, render.Page{
		Mode:    render.ModeCatalog,
		Year:    s.now().Year(),
		Count:   c.Count(),
		Flash:   s.addedFlash(r),
		Catalog: &v,
	})
}

func (s *Server) cartPage(w http.ResponseWriter, r *http.Request) {
	v, log, err := s.cartView(r)
	if err != nil {
		s.serverError(w, log, "build cart failed", err)
		return
	}

	s.writePage(w, log, render.Page{
		Mode:  render.ModeCart,
		Year:  s.now().Year(),
		Count: v.Count,
		Cart:  &v,
	})
}

func (s *Server) cartView(r *http.Request) (render.CartView, *zap.Logger, error) {
	repo, log := s.repo(r)

	c, err := s.Carts.Load(r.Context(), repo)
	if err != nil {
		return render.CartView{}, log, err
	}
	v, err := render.BuildCart(r.Context(), c, s.Catalog)
	if err != nil {
		return render.CartView{}, log, err
	}
	if len(v.Dangling) > 0 {
		log.Warn("cart references unknown products", zap.Ints("product_ids", v.Dangling))
	}
	return v, log, nil
}

// addedFlash rebuilds the confirmation shown after an add redirect.
func (s *Server) addedFlash(r *http.Request) string {
	id, err := strconv.Atoi(r.URL.Query().Get("added"))
	if err != nil {
		return ""
	}
	p, ok, err := s.Catalog.Get(r.Context(), id)
	if err != nil || !ok {
		return ""
	}
	return "Added " + p.Name + " to cart."
}

func (s *Server) formAdd(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		kit.SeeOther(w, r, "/")
		return
	}

	repo, log := s.repo(r)
	_, added, err := s.Carts.AddOne(r.Context(), repo, id)
	if err != nil {
		s.serverError(w, log, "add to cart failed", err)
		return
	}
	if !added {
		kit.SeeOther(w, r, "/")
		return
	}
	kit.SeeOther(w, r, "/?added="+strconv.Itoa(id))
}

func (s *Server) formChange(delta int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := productID(r)
		if !ok {
			kit.SeeOther(w, r, "/cart")
			return
		}

		repo, log := s.repo(r)
		if err := s.Carts.ChangeQuantity(r.Context(), repo, id, delta); err != nil {
			s.serverError(w, log, "change quantity failed", err)
			return
		}
		kit.SeeOther(w, r, "/cart")
	}
}

func (s *Server) formRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		kit.SeeOther(w, r, "/cart")
		return
	}

	repo, log := s.repo(r)
	if err := s.Carts.Remove(r.Context(), repo, id); err != nil {
		s.serverError(w, log, "remove from cart failed", err)
		return
	}
	kit.SeeOther(w, r, "/cart")
}

func (s *Server) writePage(w http.ResponseWriter, log *zap.Logger, p render.Page) {
	var buf bytes.Buffer
	if err := s.Pages.Render(&buf, p); err != nil {
		s.serverError(w, log, "render page failed", err)
		return
	}
	kit.WriteHTML(w, http.StatusOK, &buf)
}

func (s *Server) serverError(w http.ResponseWriter, log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
}

func productID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
