// Package http exposes the ledger over a small JSON API: record entries,
// query the active-cycle balance, close the cycle.
package http

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"cuentas/internal/core"
	applog "cuentas/internal/log"
	"cuentas/internal/sheets"
)

type Server struct {
	engine  *core.Engine
	backend sheets.Backend
	limiter *rateLimiter
	logger  *slog.Logger
}

// NewServer builds the HTTP server around one engine and one storage
// backend. The returned *http.Server carries conservative timeouts; the
// caller owns ListenAndServe and Shutdown.
func NewServer(addr string, engine *core.Engine, backend sheets.Backend, logger *slog.Logger) *http.Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:  engine,
		backend: backend,
		limiter: newRateLimiter(),
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/v1/members", s.handleMembers)
	mux.HandleFunc("/api/v1/entries", s.handleEntries)
	mux.HandleFunc("/api/v1/balance", s.handleBalance)
	mux.HandleFunc("/api/v1/ledger", s.handleLedger)
	mux.HandleFunc("/api/v1/cycle/close", s.handleCloseCycle)

	return &http.Server{
		Addr:           addr,
		Handler:        s.middleware(mux),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}

// middleware applies request logging and per-client rate limiting.
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ip := clientIP(r)

		if !s.limiter.allow(ip) {
			s.logger.Warn("Rate limit exceeded",
				applog.FieldComponent, applog.ComponentHTTP,
				applog.FieldClientIP, ip,
				applog.FieldPath, r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}

		next.ServeHTTP(w, r)

		s.logger.Info("Request handled",
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, ip,
			applog.FieldDuration, time.Since(start).Milliseconds())
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
