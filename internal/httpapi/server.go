// Package httpapi serves the analysis HTTP API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"stock-strategy-lab/internal/analysis"
	"stock-strategy-lab/internal/observability"
)

// Options holds HTTP server configuration.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultOptions returns server defaults. The write timeout is generous:
// an analysis over a long date range does real work before responding.
func DefaultOptions(addr string) Options {
	return Options{
		Addr:         addr,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
}

// Server is the HTTP API server.
type Server struct {
	svc        *analysis.Service
	log        zerolog.Logger
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a server with all routes and middleware registered.
func NewServer(svc *analysis.Service, logger zerolog.Logger, opts Options) *Server {
	s := &Server{
		svc:    svc,
		log:    logger.With().Str("component", "httpapi").Logger(),
		router: mux.NewRouter(),
	}
	s.routes()

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/stock_names", s.handleStockNames).Methods(http.MethodGet)
	api.HandleFunc("/stock_by_name", s.handleStockByName).Methods(http.MethodGet)
	api.HandleFunc("/stock_by_letter", s.handleStockByLetter).Methods(http.MethodGet)
	api.HandleFunc("/stock_name_by_code", s.handleStockNameByCode).Methods(http.MethodGet)
	api.HandleFunc("/stock_info", s.handleStockInfo).Methods(http.MethodGet)
	api.HandleFunc("/stock_data", s.handleStockData).Methods(http.MethodGet)
	api.HandleFunc("/analyze_strategy", s.handleAnalyze).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	s.router.Handle("/metrics", observability.Handler()).Methods(http.MethodGet)
}

// Handler returns the full middleware chain, for tests and the server.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(requestIDMiddleware(s.loggingMiddleware(s.router)))
}

// Start serves until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// corsMiddleware mirrors the request origin so browsers may send
// credentials, and short-circuits preflight requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// statusRecorder captures the response status for logs and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(started)
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		observability.RecordHTTPRequest(route, http.StatusText(rec.status), elapsed.Seconds())

		id, _ := r.Context().Value(requestIDKey).(string)
		s.log.Info().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", elapsed).
			Msg("request served")
	})
}
