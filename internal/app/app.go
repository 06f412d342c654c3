package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bidboard/internal/apiclient"
	"bidboard/internal/config"
	"bidboard/internal/controller"
	"bidboard/internal/devapi"
	"bidboard/internal/identity"
	"bidboard/internal/logger"
	"bidboard/internal/notify"
	"bidboard/internal/repository"
	"bidboard/internal/router"
	"bidboard/internal/service"
	"bidboard/internal/view"

	"github.com/rs/zerolog/log"
)

type App struct {
	name    string
	addr    string
	handler http.Handler
	closers []func() error
	stopSig chan os.Signal
	cfg     *config.Config

	Done chan struct{}
}

type option func(*App)

func WithConfig(cfg *config.Config) option {
	return func(app *App) {
		app.cfg = cfg
	}
}

func newApp(opts []option) (*App, error) {
	app := &App{
		stopSig: make(chan os.Signal, 2),
		Done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.cfg == nil {
		cfg, err := config.NewConfig()
		if err != nil {
			return nil, err
		}
		app.cfg = cfg
	}

	logger.SetGlobal(logger.New(app.cfg.LogLevel, app.cfg.LogFormat, os.Stderr))
	return app, nil
}

// NewApp wires the marketplace web frontend.
func NewApp(opts ...option) (*App, error) {
	app, err := newApp(opts)
	if err != nil {
		return nil, err
	}

	if app.cfg.BaseURL == "" {
		log.Warn().Msg("API_BASE_URL is empty, every marketplace request will fail")
	}

	views, err := view.New()
	if err != nil {
		return nil, err
	}

	svc := service.NewService(apiclient.New(app.cfg.BaseURL))
	ctrl := controller.NewController(svc, views, notify.NewFlash(app.cfg.FlashCookie))

	app.name = "web"
	app.addr = app.cfg.ServerAddress
	app.handler = router.NewRouter(ctrl, identity.NewHeaderProvider(app.cfg.IdentityConfig))
	return app, nil
}

// NewDevAPI wires the PostgreSQL backed marketplace API.
func NewDevAPI(opts ...option) (*App, error) {
	app, err := newApp(opts)
	if err != nil {
		return nil, err
	}

	repo, err := repository.NewRepository(nil, &app.cfg.PostgresConfig)
	if err != nil {
		return nil, err
	}

	app.name = "devapi"
	app.addr = app.cfg.DevAPIAddress
	app.handler = devapi.NewRouter(devapi.NewController(repo))
	app.closers = append(app.closers, repo.Close)
	return app, nil
}

func (app *App) Stop() {
	app.stopSig <- syscall.SIGTERM
}

func (app *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		signal.Notify(app.stopSig, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		sig := <-app.stopSig
		log.Info().Str("signal", sig.String()).Msg("Received signal")
		cancel()
	}()

	server := http.Server{
		Addr:         app.addr,
		Handler:      app.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Http server error")
			cancel()
		}
	}()

	log.Info().Str("app", app.name).Str("addr", app.addr).Msg("Server started, listening for connections...")
	<-ctx.Done()

	timeout, tcancel := context.WithTimeout(context.Background(), time.Second*10)
	defer tcancel()
	log.Info().Msg("Shutting down http server...")
	if err := server.Shutdown(timeout); err != nil {
		log.Error().Err(err).Msg("Http server shutdown error")
	}

	for _, closer := range app.closers {
		if err := closer(); err != nil {
			log.Error().Err(err).Msg("Closing error")
		}
	}

	signal.Stop(app.stopSig)
	close(app.Done)
	log.Info().Msg("Exiting app.")
}

// Migrate applies (up) or reverts (down) the devapi schema and exits.
func Migrate(cfg *config.Config, up bool) error {
	pg := cfg.PostgresConfig
	pg.AutoMigrateUp = "false"
	pg.AutoMigrateDown = "false"

	repo, err := repository.NewRepository(nil, &pg)
	if err != nil {
		return err
	}

	if up {
		err = repo.MigrateUp()
	} else {
		err = repo.MigrateDown()
	}
	return errors.Join(err, repo.Close())
}
