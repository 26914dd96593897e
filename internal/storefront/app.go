package storefront

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"TeeShop/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled   bool
	MetricsTokenHash string

	ProfileSecret string
	AssetsDir     string

	// MutationLimitPerMin caps cart changes per client IP; 0 disables it.
	MutationLimitPerMin int
}

const (
	readyTimeout = 2 * time.Second
	limitWindow  = time.Minute
)

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	r := kit.NewServiceRouter(kit.ServiceDeps{
		Log:              deps.Log,
		Service:          deps.Service,
		Registry:         deps.Registry,
		MetricsEnabled:   deps.MetricsEnabled,
		MetricsTokenHash: deps.MetricsTokenHash,
	})

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", kit.Readyz(s.Ready, readyTimeout, deps.Log))

	if deps.AssetsDir != "" {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(deps.AssetsDir))))
	}

	limiter := kit.NewIPRateLimiter(deps.MutationLimitPerMin, limitWindow)
	tokens := NewProfileTokens(deps.ProfileSecret)

	r.Group(func(pr chi.Router) {
		pr.Use(limitMutations(limiter))
		pr.Use(Profiles(tokens, deps.Log))
		pr.Mount("/", s.Routes())
	})

	return r
}

// limitMutations applies the limiter to state-changing requests only; page
// views are never throttled.
func limitMutations(l *kit.IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := l.Middleware(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				limited.ServeHTTP(w, r)
			}
		})
	}
}
