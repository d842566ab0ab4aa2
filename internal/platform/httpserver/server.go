package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	multisigservice "themis/contexts/governance/multisig-service"
	accesscontrolservice "themis/contexts/identity-access/access-control-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "themis/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	multisig multisigservice.Module
	access   accesscontrolservice.Module
}

func New(
	multisig multisigservice.Module,
	access accesscontrolservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		multisig: multisig,
		access:   access,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.registerGovernanceRoutes()
	s.registerAccessRoutes()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// resolveMemberAddress returns the caller identity resolved by the edge proxy.
// Handlers that mutate state require it; queries may run anonymously.
func resolveMemberAddress(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Member-Address"))
}
