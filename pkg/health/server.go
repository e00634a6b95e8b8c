package health

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/dmitrymomot/digest/pkg/logger"
)

const (
	defaultAddress           = ":8080"
	defaultShutdownTimeout   = 30 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultIdleTimeout       = 60 * time.Second
)

// ServerConfig configures the health server run alongside the scheduler.
type ServerConfig struct {
	Handler         http.Handler
	Logger          *slog.Logger
	Address         string
	ShutdownTimeout time.Duration
	// ShutdownHooks run in order after the listener closes.
	ShutdownHooks []func(context.Context) error
}

// Serve listens on cfg.Address and blocks until ctx is done, then shuts the
// server down and runs the hooks. Callers pass a signal-aware context.
func Serve(ctx context.Context, cfg ServerConfig) error {
	if cfg.Address == "" {
		cfg.Address = defaultAddress
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = logger.NewNope()
	}

	server := &http.Server{
		Addr:              cfg.Address,
		Handler:           cfg.Handler,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		IdleTimeout:       defaultIdleTimeout,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("health server starting", slog.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	for _, hook := range cfg.ShutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			log.Error("shutdown hook failed", slog.Any("error", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	log.Info("shutdown completed")
	return nil
}
