// ABOUTME: HTTP server lifecycle for the local API
// ABOUTME: Binds to localhost and shuts down gracefully when the context ends
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/web"
	"go.uber.org/zap"
)

type Server struct {
	app    *app.App
	router http.Handler
	logger *zap.Logger
}

func NewServer(a *app.App, version string) (*Server, error) {
	pages, err := web.NewServer(a)
	if err != nil {
		return nil, err
	}
	return &Server{
		app:    a,
		router: NewRouter(NewHandler(a, version), pages),
		logger: a.Logger.Named("api"),
	}, nil
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on 127.0.0.1:port until ctx is canceled.
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.app.Config.Server.ShutdownTimeout.Std())
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
