package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/irahardianto/codereview/internal/platform/logger"
)

// ShutdownTimeout bounds how long in-flight reviews may finish after ctx is cancelled.
const ShutdownTimeout = 30 * time.Second

// Serve listens on addr and serves handler until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return ServeListener(ctx, ln, handler)
}

// ServeListener serves handler on ln until ctx is cancelled, then shuts down
// gracefully. Request contexts carry ctx's logger but not its cancellation.
func ServeListener(ctx context.Context, ln net.Listener, handler http.Handler) error {
	log := logger.FromContext(ctx)
	base := context.WithoutCancel(ctx)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(base, ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
