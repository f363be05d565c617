package app

import (
	"context"
	"net/http"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/presenter"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgconfig"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkglog"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgrouter"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgroutine"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	snowflake pkguid.NumberID
	goroutine *pkgroutine.Manager
	charts    *presenter.Capabilities

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	// shutdown hooks, run in reverse order by Stop
	closers []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

const closerHTTPServer = "HTTP Server"

func (a *App) addCloser(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

func New() *App {
	pkglog.InitLogging()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initClosers()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()

	return app
}
