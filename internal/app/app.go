// Package app wires the floor client: transport, state containers, polling
// loops, the local status endpoint and the console frontend.
package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/appetiteclub/apt"

	"github.com/appetiteclub/floor/internal/api"
	"github.com/appetiteclub/floor/internal/console"
	"github.com/appetiteclub/floor/internal/floor"
	"github.com/appetiteclub/floor/internal/localstore"
	"github.com/appetiteclub/floor/internal/status"
)

const (
	AppName    = "floor"
	AppVersion = "0.1.0"
)

// App encapsulates the floor client application.
type App struct {
	config *apt.Config
	logger apt.Logger

	client   *api.Client
	menu     *floor.MenuState
	cart     *floor.Cart
	identity *floor.IdentityHolder
	notifier *floor.Notifier
	overview *floor.OverviewBoard
	queue    *floor.PrintQueue
	pipeline *floor.Pipeline
	comandas *floor.Comandas

	pollers      []*floor.Poller
	statusServer *http.Server
}

func New(config *apt.Config, logger apt.Logger) *App {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &App{
		config: config,
		logger: logger,
	}
}

// Initialize builds all components and hydrates persisted state. The menu is
// loaded best effort; a failure here is retryable from the console.
func (a *App) Initialize(ctx context.Context) error {
	baseURL, _ := a.config.GetString("api.url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	a.client = api.NewClient(baseURL, a.logger)
	if token, _ := a.config.GetString("api.token"); token != "" {
		a.client.SetToken(token)
	}

	statePath, _ := a.config.GetString("state.path")
	if statePath == "" {
		var err error
		statePath, err = localstore.DefaultIdentityPath()
		if err != nil {
			return err
		}
	}
	store := localstore.NewIdentityFile(statePath, a.logger)

	a.identity = floor.NewIdentityHolder(store, a.logger)
	if err := a.identity.Hydrate(); err != nil {
		a.logger.Errorf("identity hydration failed (continuing without): %v", err)
	}

	a.notifier = floor.NewNotifier()
	a.menu = floor.NewMenuState(a.client, a.logger)
	a.cart = floor.NewCart(a.menu)
	a.overview = floor.NewOverviewBoard(a.client, a.logger)
	a.queue = floor.NewPrintQueue(a.client, a.notifier, a.logger)
	a.pipeline = floor.NewPipeline(a.cart, a.identity, a.overview, a.client, a.notifier, a.logger)
	a.comandas = floor.NewComandas(a.client, a.overview, a.notifier, a.logger)

	// Session expiry cascades exactly like an explicit logout.
	a.client.OnAuthExpired = func() {
		a.notifier.Info("Session", "Your session expired. Log in again.")
		a.client.ClearToken()
	}

	if err := a.menu.Load(ctx); err != nil {
		a.logger.Errorf("initial menu load failed: %v", err)
	}
	_ = a.overview.Refresh(ctx)
	_ = a.queue.Refresh(ctx)

	return nil
}

// Run starts both polling loops and the status endpoint, then blocks on the
// console until it exits or the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	interval := a.pollInterval()
	overviewPoller := a.overview.Poll(interval)
	queuePoller := a.queue.Poll(interval)
	overviewPoller.Start(ctx)
	queuePoller.Start(ctx)
	a.pollers = append(a.pollers, overviewPoller, queuePoller)

	a.startStatusServer()

	term := console.New(console.Deps{
		Menu:     a.menu,
		Cart:     a.cart,
		Identity: a.identity,
		Pipeline: a.pipeline,
		Comandas: a.comandas,
		Overview: a.overview,
		Queue:    a.queue,
		Backend:  a.client,
		Notifier: a.notifier,
		Logout:   a.Logout,
	}, os.Stdin, os.Stdout, a.logger)

	err := term.Run(ctx)
	a.shutdown()
	return err
}

func (a *App) pollInterval() time.Duration {
	raw, _ := a.config.GetString("poll.interval")
	if raw == "" {
		return floor.DefaultPollInterval
	}
	interval, err := time.ParseDuration(raw)
	if err != nil || interval <= 0 {
		a.logger.Errorf("invalid poll.interval %q, using default", raw)
		return floor.DefaultPollInterval
	}
	return interval
}

func (a *App) startStatusServer() {
	port, _ := a.config.GetString("status.port")
	if port == "" {
		return
	}

	handler := status.NewHandler(a.overview, a.queue, a.identity, a.logger)
	a.statusServer = &http.Server{
		Addr:         ":" + port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		a.logger.Info("status endpoint listening", "addr", a.statusServer.Addr)
		if err := a.statusServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Errorf("status endpoint stopped: %v", err)
		}
	}()
}

// Logout ends the session: best-effort server call, then local cleanup. The
// operational waiter selection is cleared as part of the cascade.
func (a *App) Logout(ctx context.Context) {
	if err := a.client.Logout(ctx); err != nil {
		a.logger.Debug("server logout failed, clearing local state anyway", "error", err)
	}
	a.client.ClearToken()
	if err := a.identity.Clear(); err != nil {
		a.logger.Errorf("could not clear operational identity: %v", err)
	}
	a.notifier.Info("Session", "You are logged out.")
}

// shutdown tears the views down: stop scheduling, then set the lifetime
// guards so in-flight ticks resolving late are discarded.
func (a *App) shutdown() {
	for _, p := range a.pollers {
		p.Stop()
	}
	a.overview.Close()
	a.queue.Close()

	if a.statusServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.statusServer.Shutdown(ctx)
	}
}
