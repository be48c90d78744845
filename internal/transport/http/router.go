package http

import (
	"net/http"

	"github.com/go-approvals-api/internal/application/verification"
	"github.com/go-approvals-api/internal/config"
	"github.com/go-approvals-api/internal/transport/http/handler"
	appmiddleware "github.com/go-approvals-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the public create endpoint.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	verificationSvc := verification.NewService(verification.ServiceDeps{
		Store:          deps.Store,
		PaymentMethods: deps.PaymentMethods,
		Channel:        deps.Channel,
		SMSSender:      deps.SMSSender,
	})

	healthH := handler.NewHealthHandler()
	verificationH := handler.NewVerificationHandler(verificationSvc, cfg.PollIntervalSeconds)
	webhookH := handler.NewWebhookHandler(verificationSvc, deps.Channel, cfg.TelegramWebhookSecret)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/verifications", verificationH.Create)
		r.Get("/verifications/{id}", verificationH.Status)

		r.Post("/telegram/webhook", webhookH.Receive)
	})

	return r
}
