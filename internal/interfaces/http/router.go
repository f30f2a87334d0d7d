package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	metrics "github.com/turtacn/LexConnect/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LexConnect/internal/interfaces/http/handlers"
	"github.com/turtacn/LexConnect/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and middleware settings for the route
// tree.  Nil handlers leave their routes unmounted.
type RouterConfig struct {
	// Handlers
	CaseHandler    *handlers.CaseHandler
	LawyerHandler  *handlers.LawyerHandler
	AuthHandler    *handlers.AuthHandler
	BookingHandler *handlers.BookingHandler
	HealthHandler  *handlers.HealthHandler

	// Middleware
	CORS      *middleware.CORSConfig
	Logging   *middleware.LoggingConfig
	RateLimit *middleware.RateLimitConfig

	// Infrastructure
	Logger           logging.Logger
	Metrics          *metrics.AppMetrics
	MetricsCollector metrics.MetricsCollector
	MetricsPath      string
}

// NewRouter constructs the complete HTTP route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNopMetrics()
	}

	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.Logging != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, *cfg.Logging))
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(cfg.Metrics))
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}

	// --- Probes ---
	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, cfg.MetricsCollector.Handler())
	}

	// --- API v1 ---
	r.Route("/api/v1", func(api chi.Router) {
		if cfg.RateLimit != nil {
			rl := *cfg.RateLimit
			if rl.Metrics == nil {
				rl.Metrics = cfg.Metrics
			}
			api.Use(middleware.RateLimit(rl))
		}

		registerCaseRoutes(api, cfg.CaseHandler)
		registerLawyerRoutes(api, cfg.LawyerHandler)
		registerAuthRoutes(api, cfg.AuthHandler)
		registerBookingRoutes(api, cfg.BookingHandler)
	})

	return r
}

func registerCaseRoutes(r chi.Router, h *handlers.CaseHandler) {
	if h == nil {
		return
	}
	r.Route("/cases", func(cr chi.Router) {
		cr.Post("/classify", h.Classify)
		cr.Post("/analyze", h.Analyze)
	})
}

func registerLawyerRoutes(r chi.Router, h *handlers.LawyerHandler) {
	if h == nil {
		return
	}
	r.Get("/specializations", h.Specializations)
	r.Route("/lawyers", func(lr chi.Router) {
		lr.Get("/", h.List)
		lr.Post("/", h.Create)
		lr.Get("/{lawyerID}", h.Get)
	})
}

func registerAuthRoutes(r chi.Router, h *handlers.AuthHandler) {
	if h == nil {
		return
	}
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", h.Register)
		ar.Post("/login", h.Login)
	})
}

func registerBookingRoutes(r chi.Router, h *handlers.BookingHandler) {
	if h == nil {
		return
	}
	r.Route("/bookings", func(br chi.Router) {
		br.Post("/", h.Create)
		br.Route("/{bookingID}", func(item chi.Router) {
			item.Get("/", h.Get)
			item.Post("/payment", h.Pay)
			item.Post("/cancel", h.Cancel)
			item.Get("/receipt", h.Receipt)
		})
	})
	r.Get("/users/{userID}/bookings", h.ListByUser)
}

//Personal.AI order the ending
