package app

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/presenter"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgconfig"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkglog"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgrouter"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgroutine"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkguid"
)

func (a *App) initConfig() {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"

		// .env only fills variables that are not already set.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to load .env file", "error", err)
		}
	}
	if p := os.Getenv(pkgconfig.EnvPrefix + "_CONFIG"); p != "" {
		path = p
	}

	cfg, err := pkgconfig.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	pkglog.SetLevel(cfg.GetString("log.level"))

	a.config = cfg
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(100)
	a.uuid = pkguid.NewUUID()

	sf, err := pkguid.NewSnowflake(a.config.GetInt("snowflake.node_id"))
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.snowflake = sf

	caps, err := presenter.Register()
	if err != nil {
		slog.Error("failed to register chart capabilities", "error", err)
		os.Exit(1)
	}
	a.charts = caps
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.addCloser(closerHTTPServer, a.httpServer.Shutdown)
}

// initClosers registers the config closer first so it is released last.
func (a *App) initClosers() {
	a.addCloser("Config", func(context.Context) error {
		return a.config.Close()
	})
}
