// Package portal serves the HTTP surface of the system: the USSD gateway
// callback, the public JSON API, and the authenticated back-office API.
package portal

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/alerta-nampula/alerta/internal/store"
	"github.com/alerta-nampula/alerta/internal/ussd"
	"github.com/gin-gonic/gin"
)

// StartOpts holds configuration for the portal server.
type StartOpts struct {
	Store       *store.Store
	Interpreter *ussd.Interpreter
	Port        int
	Out         io.Writer
}

// Start launches the portal HTTP server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Store == nil {
		return fmt.Errorf("portal: store is required")
	}
	if opts.Interpreter == nil {
		return fmt.Errorf("portal: ussd interpreter is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	router := NewRouter(opts.Store, opts.Interpreter)

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Portal running at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("portal: %w", err)
	}
	return nil
}

// NewRouter builds the Gin router with all routes registered. Split out from
// Start so tests can drive it with httptest.
func NewRouter(st *store.Store, it *ussd.Interpreter) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	registerRoutes(router, st, it)
	registerAdminRoutes(router, st)
	return router
}
