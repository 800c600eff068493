package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"lingo-service/internal/config"
	"lingo-service/internal/realtime"
)

type App struct {
	httpServer *http.Server
	gateway    *realtime.Gateway
	infra      *Infra
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	router, gateway, infra, err := setupHTTP(ctx, cfg)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		httpServer: server,
		gateway:    gateway,
		infra:      infra,
	}, nil
}

// Run blocks serving HTTP. It returns nil once Shutdown has been called.
func (a *App) Run() error {
	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, then drops realtime clients, then
// closes the backing stores.
func (a *App) Shutdown(ctx context.Context) error {
	// Hijacked websocket connections are not tracked by the server
	err := a.httpServer.Shutdown(ctx)
	a.gateway.Close()
	return errors.Join(err, a.infra.Close())
}
