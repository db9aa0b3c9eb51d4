package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/octofit/octofit-web/pkg/config/v2"
	"github.com/octofit/octofit-web/pkg/requestlogger"
	"github.com/octofit/octofit-web/pkg/service"
	"github.com/octofit/octofit-web/pkg/service/core"
	apiclients "github.com/octofit/octofit-web/pkg/service/core/api"
	"github.com/octofit/octofit-web/pkg/service/core/handlers"
	"github.com/octofit/octofit-web/pkg/service/core/routes"
	"github.com/octofit/octofit-web/pkg/state"
	"github.com/octofit/octofit-web/pkg/tracker"
	"github.com/octofit/octofit-web/pkg/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

var (
	configFilePath = flag.String("config", "config.yaml", "path to config file")
	envFilePath    = flag.String("env-file", ".env", "path to a dotenv file, ignored when missing")
	printRoutes    = flag.Bool("print-routes", false, "print the registered routes and exit")
)

func main() {
	flag.Parse()

	zlog := zerolog.New(os.Stdout).With().Timestamp().Logger()

	err := config.LoadEnvFile(*envFilePath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("loading env file")
	}

	fileParts, err := config.ProcessConfigPath(*configFilePath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("processing config path")
	}

	cfg, err := config.NewFileSystemLoader().Load(fileParts.FileName, fileParts.Path, "OCTOFIT", config.NewDefaultEnvBinder())
	if err != nil {
		zlog.Fatal().Err(err).Msg("loading config")
	}

	err = cfg.Validate()
	if err != nil {
		zlog.Fatal().Err(err).Msg("validating config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		zlog.Fatal().Err(err).Msg("parsing log level")
	}

	zlog = zlog.Level(level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	// No timeout: a slow tracker API only delays the views waiting on it.
	httpClient := &http.Client{}

	entities := service.Entities()

	trackerFetcher := tracker.New(cfg.Tracker.BaseURL(), httpClient)
	apiClients := apiclients.NewClients(trackerFetcher, zlog.With().Str("subsystem", "api_clients").Logger())
	store := state.NewMemory(zlog.With().Str("subsystem", "state").Logger())

	services, err := core.NewServices(entities, apiClients, store, zlog)
	if err != nil {
		zlog.Fatal().Err(err).Msg("setting up services")
	}

	renderer, err := web.NewRenderer(service.NewMenu(entities))
	if err != nil {
		zlog.Fatal().Err(err).Msg("setting up renderer")
	}

	h := handlers.NewHandlers(services, renderer)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestlogger.Middleware(zlog, "/internal/"))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)

	collectors := append(apiClients.Metrics(), state.Metrics(store)...)

	routes.Add(router,
		routes.NewViewsRoutes(routes.NewViewsEndpoints(zlog, h.ViewsHandler, entities)),
		routes.NewMetricsRoutes(routes.NewMetricsEndpoints(prom(collectors...))),
	)

	if cfg.Debug {
		router.Mount("/internal/debug", middleware.Profiler())
	}

	if *printRoutes {
		err = routes.Print(router, os.Stdout)
		if err != nil {
			zlog.Fatal().Err(err).Msg("printing routes")
		}

		return
	}

	server := http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Address, cfg.Server.Port),
		Handler: router,
	}

	zlog.Info().
		Str("tracker_api", cfg.Tracker.BaseURL()).
		Msgf("listening on %s", server.Addr)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("serving")
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Warn().Err(err).Msg("shutdown error")
	}
}

func prom(cols ...prometheus.Collector) *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(prometheus.NewGoCollector())
	r.MustRegister(cols...)

	return r
}
