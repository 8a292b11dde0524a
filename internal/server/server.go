// Package server serves a deck of vCards over HTTP: an index page, the
// contact list, and each card as raw text or structured JSON.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/emurenMRz/vdeck/internal/browser"
	"github.com/emurenMRz/vdeck/internal/deck"
	"github.com/emurenMRz/vdeck/internal/logging"
)

// ShutdownTimeout bounds how long ListenAndServe waits for open requests.
const ShutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	// StaticDir is served under /static/. Empty disables it.
	StaticDir string
	// Title is shown on the index page.
	Title string
}

// Server serves one deck.
type Server struct {
	deck      *deck.Deck
	opts      Options
	endpoints browser.Endpoints
	router    *mux.Router
	log       logging.Logger
}

// New returns a server for d with every route registered.
func New(d *deck.Deck, opts Options) *Server {
	if opts.Title == "" {
		opts.Title = "vdeck"
	}
	// Relative endpoints keep the index links valid behind any host name.
	endpoints, _ := browser.NewEndpoints("")
	s := &Server{
		deck:      d,
		opts:      opts,
		endpoints: endpoints,
		log:       logging.WithFields(logging.String("component", "server")),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("Listening", logging.String("addr", ln.Addr().String()), logging.String("deck", s.deck.Root()))
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
