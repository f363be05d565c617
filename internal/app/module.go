package app

import (
	"log/slog"
	"os"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.accesslogs.enabled") {
		closeFn, err := accesslogs.New(accesslogs.Dependency{
			Config:    a.config,
			Router:    a.router,
			Goroutine: a.goroutine,
			Context:   a.ctx,
			ID:        a.uuid,
			RunID:     a.snowflake,
			Charts:    a.charts,
		})
		if err != nil {
			slog.Error("failed to init module accesslogs", "error", err)
			os.Exit(1)
		}
		if closeFn != nil {
			a.addCloser("AccessLogs", closeFn)
		}
	}
}
