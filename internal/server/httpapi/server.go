// Package httpapi is the REST surface of the service: routing,
// authentication and role middleware, per-route rate limits, and the
// request/response DTOs.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/contacthub/internal/logging"
	"github.com/dmitrijs2005/contacthub/internal/server/services"
)

// Pinger reports backend liveness for the healthcheck endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server owns the HTTP listener and the route table.
type Server struct {
	addr     string
	users    *services.UserService
	contacts *services.ContactService
	notes    *services.NoteService
	tags     *services.TagService
	counter  Counter
	db       Pinger
	logger   logging.Logger

	httpServer *http.Server
}

func NewServer(addr string,
	users *services.UserService,
	contacts *services.ContactService,
	notes *services.NoteService,
	tags *services.TagService,
	counter Counter,
	db Pinger,
	logger logging.Logger,
) *Server {
	s := &Server{
		addr:     addr,
		users:    users,
		contacts: contacts,
		notes:    notes,
		tags:     tags,
		counter:  counter,
		db:       db,
		logger:   logger,
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Run serves until ctx is cancelled, then drains in-flight requests
// with a bounded shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "http server starting", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "http server stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return <-errCh
}

func (s *Server) healthcheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error(ctx, "healthcheck db ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Database is not available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Welcome to ContactHub API"})
}
