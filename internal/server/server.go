package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/retardedwizard/muxamp/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, authentication, CORS, rate limiting, etc.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the playlist service.
// Implementations handle specific endpoints (search, playlist fetch, playlist save).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// MuxRouter is an HTTP router implementing the [Router] interface.
//
// Uses [mux.Router] internally so route patterns may carry path variables,
// e.g. /playlists/{id}.
type MuxRouter struct {
	mux         *mux.Router
	middlewares []Middleware
}

// NewMuxRouter creates a new [MuxRouter] instance.
func NewMuxRouter() *MuxRouter {
	return &MuxRouter{
		mux:         mux.NewRouter(),
		middlewares: []Middleware{},
	}
}

// Use adds [Middleware] to the [Router] instance's middleware stack, applied in the order it's added.
func (r *MuxRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers a handler for the specified HTTP method and path.
//
// The handler is wrapped with all middleware registered so far.
func (r *MuxRouter) Handle(method, path string, handler http.Handler) {
	r.mux.Handle(path, r.Apply(handler)).Methods(method)
}

// Handler registers a custom Handler implementation.
//
// All routes returned by [Handler.Routes] are registered with this handler,
// without a method restriction.
func (r *MuxRouter) Handler(handler Handler) {
	wrapped := r.Apply(handler)

	for _, route := range handler.Routes() {
		r.mux.Handle(route, wrapped)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *MuxRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *MuxRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}

// Mount registers the playlist service endpoints on the router.
//
// The save route is method-restricted to POST so it never shadows the
// playlist fetch route.
func Mount(r Router, search *SearchHandler, playlists *PlaylistHandler, save *SaveHandler, status *StatusHandler) {
	r.Handle(http.MethodPost, save.Routes()[0], save)
	r.Handle(http.MethodGet, playlists.Routes()[0], playlists)
	r.Handle(http.MethodGet, search.Routes()[0], search)
	r.Handler(status)
}

// Server wraps an [http.Server] with the service router and config-driven
// timeouts.
type Server struct {
	addr        string
	readTimeout time.Duration
	router      Router
	logger      *log.Logger
}

// NewServer creates a server bound to the configured address.
func NewServer(cfg *shared.Config, router Router, logger *log.Logger) *Server {
	return &Server{
		addr:        cfg.Server.Address(),
		readTimeout: time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		router:      router,
		logger:      shared.WithLogger(logger, "component", "server"),
	}
}

// ListenAndServe serves until the context is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.addr,
		Handler:     s.router,
		ReadTimeout: s.readTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown failed", "error", err)
		}
	}()

	s.logger.Info("listening", "addr", s.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
