package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bloomviewer/internal/auth"
	"bloomviewer/internal/config"
	"bloomviewer/internal/fixtures"
	"bloomviewer/internal/handlers"
	"bloomviewer/internal/logger"
	"bloomviewer/internal/metrics"
	mdlwr "bloomviewer/internal/middleware"
	"bloomviewer/internal/services"
	"bloomviewer/internal/store"
)

// Dependencies are the long-lived objects the router wires into handlers.
// Metrics, Gatherer, Clock and JWT are optional.
type Dependencies struct {
	Store    store.LocationStore
	Seed     *fixtures.Seed
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Clock    clockwork.Clock
	JWT      *auth.JWTManager
}

func NewRouter(cfg *config.Config, logr *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	// CORS middleware with config
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	locationSvc := services.NewLocationService(deps.Store, deps.Metrics, logr.Logger)
	bloomSvc := services.NewBloomService(deps.Store, deps.Clock)
	speciesSvc := services.NewSpeciesService(deps.Seed.Species)
	overlaySvc, err := services.NewOverlayService(deps.Seed.Overlays, deps.Store)
	if err != nil {
		logr.Fatal("failed to index overlays", zap.Error(err))
	}

	locationHandler := handlers.NewLocationHandler(locationSvc, bloomSvc, logr.Logger)
	overlayHandler := handlers.NewOverlayHandler(overlaySvc, logr.Logger)
	speciesHandler := handlers.NewSpeciesHandler(speciesSvc, logr.Logger)

	// editor guard for mutating location routes
	guard := func(next http.Handler) http.Handler { return next }
	if cfg.AuthEnabled {
		jwtMgr := deps.JWT
		if jwtMgr == nil {
			jwtMgr, err = auth.NewJWTManager("", cfg.JWTPublicKeyPath, cfg.JWTIssuer)
			if err != nil {
				logr.Fatal("failed to init jwt manager", zap.Error(err))
			}
		}
		guard = mdlwr.NewAuthMiddleware(jwtMgr, logr.Logger).RequireEditor
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("ok"))
		if err != nil {
			return
		}
	})

	if cfg.MetricsEnabled && deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", locationHandler.List)
			r.Get("/in-bloom", locationHandler.InBloom)
			r.Get("/{id}", locationHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(guard)
				r.Post("/", locationHandler.Create)
				r.Put("/", locationHandler.Update)
				r.Delete("/", locationHandler.Delete)
				r.Put("/{id}", locationHandler.Update)
				r.Delete("/{id}", locationHandler.Delete)
			})
		})

		r.Route("/overlays", func(r chi.Router) {
			r.Get("/", overlayHandler.List)
			r.Get("/at", overlayHandler.At)
			r.Get("/summary", overlayHandler.Summary)
			r.Get("/{id}", overlayHandler.Get)
		})

		r.Route("/species", func(r chi.Router) {
			r.Get("/", speciesHandler.List)
			r.Get("/{id}", speciesHandler.Get)
		})
	})

	return r
}
