package catalog

import (
	"net/http"

	"TeeShop/pkg/kit"
)

type HTTPDeps = kit.ServiceDeps

// NewHandler serves the catalog API with the shared service middleware.
func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if deps.Log != nil && s.Log == nil {
		s.Log = deps.Log
	}

	r := kit.NewServiceRouter(deps)
	r.Mount("/", s.Routes())
	return r
}
