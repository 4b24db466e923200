// Package api serves the catalog over HTTP as JSON. It is the web surface
// of the search pipeline: list with filters, sorting and paging, quick
// search, low stock, and single-product CRUD.
//
// Routes:
//
//	GET    /health
//	GET    /products              ?search=&in_stock=&min_price=&max_price=&sort_by=&limit=&offset=
//	GET    /products/search       ?q=&limit=
//	GET    /products/low_stock    ?threshold=
//	GET    /products/:id
//	POST   /products
//	PATCH  /products/:id          (PUT is accepted too)
//	DELETE /products/:id
//
// Writes are attributed to the X-Author request header and recorded in the
// audit log.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jpl-au/catalogd/internal/service"
)

// AuthorHeader names the request header carrying write attribution.
const AuthorHeader = "X-Author"

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 5 * time.Second

// Server is the HTTP front end of a catalog.
type Server struct {
	svc    service.Service
	log    *slog.Logger
	router *gin.Engine
	server *http.Server
}

// New builds a server for svc listening on addr. A nil logger uses
// slog.Default().
func New(svc service.Service, addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{svc: svc, log: logger}

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())
	s.routes()

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.GET("/health", s.health)

	products := s.router.Group("/products")
	{
		products.GET("", s.list)
		products.GET("/search", s.quick)
		products.GET("/low_stock", s.lowStock)
		products.GET("/:id", s.show)
		products.POST("", s.create)
		products.PATCH("/:id", s.update)
		products.PUT("/:id", s.update)
		products.DELETE("/:id", s.destroy)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("catalogd HTTP API listening", "addr", s.server.Addr)
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("HTTP API stopped")
	return nil
}

// requestLogger logs one line per request through slog, in place of
// gin's own logger.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
