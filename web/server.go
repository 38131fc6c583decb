//go:build !test

/* server.go
 * Contains the HTTP server Start function that listens for incoming connections.
 * Excluded from test coverage as it blocks and requires real network binding.
 * Author: Zachary Bower
 */

package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Start runs the preview server until it fails or the process exits.
// Preconditions: the configured dist directory should hold a generated site
// Postconditions: blocks on ListenAndServe; the returned error is always non nil
func Start(cfg Config) error {
	s := NewServer(cfg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/search", s.SearchHandler)
	r.Get("/api/events", s.EventsHandler)
	r.Handle("/*", http.FileServer(http.Dir(s.dist)))

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.log.WithField("addr", cfg.Addr).Info("preview server listening")
	return srv.ListenAndServe()
}
