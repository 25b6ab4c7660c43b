package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/linkrelay/pkg/utils/logging"
	"github.com/secmon-lab/linkrelay/pkg/utils/safe"
)

type Server struct {
	router              *chi.Mux
	slackWebhookHandler *SlackWebhookHandler
	slackSigningSecret  string
}

type Options func(*Server)

func WithSlackWebhook(handler *SlackWebhookHandler, signingSecret string) Options {
	return func(s *Server) {
		s.slackWebhookHandler = handler
		s.slackSigningSecret = signingSecret
	}
}

func New(opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	// No auth on Slack hooks; requests are authenticated by signature
	if s.slackWebhookHandler != nil {
		r.Route("/hooks/slack", func(r chi.Router) {
			r.Use(SlackSignatureMiddleware(s.slackSigningSecret))
			r.Post("/event", s.slackWebhookHandler.ServeHTTP)
		})
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, []byte(`{"status":"ok"}`))
}
