package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/clients"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/config"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/report"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ClientServer is the HTTP API for client records.
type ClientServer struct {
	router chi.Router
	store  clients.Store
	log    *slog.Logger
	cfg    config.Config
}

// NewClientServer creates and configures the client-record API.
func NewClientServer(store clients.Store, log *slog.Logger, cfg config.Config) *ClientServer {
	s := &ClientServer{
		store: store,
		log:   log.With("service", "clients"),
		cfg:   cfg,
	}
	s.setupRoutes()
	return s
}

func (s *ClientServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *ClientServer) setupRoutes() {
	r := newRouter(s.log)

	r.Get("/", s.handleHome)
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", s.handleListClients)
		r.Post("/", s.handleCreateClient)
		r.Get("/summary", s.handleClientSummary)
		r.Get("/{uuid}", s.handleGetClient)
		r.Put("/{uuid}", s.handleUpdateClient)
		r.Delete("/{uuid}", s.handleDeleteClient)
	})

	s.router = r
}

// ReportServer is the HTTP API for grant report generation.
type ReportServer struct {
	router  chi.Router
	reports *report.Service
	log     *slog.Logger
	cfg     config.Config
}

// NewReportServer creates and configures the report API.
func NewReportServer(reports *report.Service, log *slog.Logger, cfg config.Config) *ReportServer {
	s := &ReportServer{
		reports: reports,
		log:     log.With("service", "reports"),
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *ReportServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *ReportServer) setupRoutes() {
	r := newRouter(s.log)

	// Public endpoints.
	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.ReportAPIKey != "" {
			r.Use(AuthMiddleware(s.cfg.ReportAPIKey, s.log))
		}

		r.Post("/generate-report", s.handleGenerateReport)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func newRouter(log *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
