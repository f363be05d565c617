package accesslogs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/entity"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/event"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/inbound"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/presenter"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/store"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/usecase"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgconfig"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgrouter"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgroutine"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkguid"
)

const defaultBusBuffer = 64

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	ID        pkguid.StringID
	RunID     pkguid.NumberID
	Charts    *presenter.Capabilities
	// Console receives the terminal chart view when chart.console.enabled is
	// set. Defaults to stdout.
	Console io.Writer
}

func New(dep Dependency) (func(context.Context) error, error) {
	cfg := dep.Config

	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	driver, err := store.NewDriver(blobConfig(cfg), store.Dependencies{})
	if err != nil {
		return nil, fmt.Errorf("init blob store: %w", err)
	}
	fetchTimeout := cfg.GetDuration("pipeline.fetch_timeout")
	blobs := store.NewBlobStore(driver, cfg.GetString("blob.base_url"), &http.Client{Timeout: fetchTimeout})

	renderer, err := presenter.NewChartRenderer(dep.Charts, presenter.ChartConfig{
		Width:  int(cfg.GetInt("chart.width")),
		Height: int(cfg.GetInt("chart.height")),
	})
	if err != nil {
		_ = blobs.Close(context.Background())
		return nil, err
	}

	presenters := presenter.Fanout{renderer}
	if cfg.GetBool("chart.console.enabled") {
		out := dep.Console
		if out == nil {
			out = os.Stdout
		}
		presenters = append(presenters, presenter.NewConsole(out, int(cfg.GetInt("chart.console.width"))))
	}

	buffer := int(cfg.GetInt("pipeline.bus_buffer"))
	if buffer < 1 {
		buffer = defaultBusBuffer
	}
	urlBus := event.NewBus[entity.URLReadyEvent](buffer)
	snapshotBus := event.NewBus[entity.PublishedEvent](buffer)

	pipeline := usecase.NewPipeline(usecase.PipelineDependency{
		Fetcher:      blobs,
		Publisher:    snapshotBus,
		Runner:       dep.Goroutine,
		EventID:      dep.ID,
		RunID:        dep.RunID,
		RootCtx:      dep.Context,
		FetchTimeout: fetchTimeout,
	})

	coordinator := usecase.NewCoordinator(usecase.CoordinatorDependency{
		Store:  blobs,
		Events: urlBus,
		ID:     dep.ID,
	})

	// One worker each: URLs are requested and snapshots drawn in publish order.
	urlConsumer := event.NewConsumer(urlBus, event.HandlerFunc[entity.URLReadyEvent](
		func(ctx context.Context, ev entity.URLReadyEvent) error {
			pipeline.Request(ev.URL)
			return nil
		},
	), event.ConsumerConfig{Name: "url-ready", Workers: 1})

	renderConsumer := event.NewConsumer(snapshotBus, event.HandlerFunc[entity.PublishedEvent](
		func(ctx context.Context, ev entity.PublishedEvent) error {
			return presenters.Render(ctx, ev.Snapshot)
		},
	), event.ConsumerConfig{Name: "render", Workers: 1, MaxRetries: 2, BaseBackoff: 100 * time.Millisecond})

	urlConsumer.Start()
	renderConsumer.Start()

	inbound.RegisterHTTPEndpoint(dep.Router, inbound.Dependency{
		Coordinator:    coordinator,
		Pipeline:       pipeline,
		Charts:         renderer,
		Blobs:          blobs,
		MaxUploadBytes: cfg.GetInt("upload.max_bytes"),
	})

	slog.Info("accesslogs module ready", "blob_driver", cfg.GetString("blob.driver"), "console", cfg.GetBool("chart.console.enabled"))

	return func(ctx context.Context) error {
		return errors.Join(
			urlConsumer.Stop(ctx),
			pipeline.Stop(ctx),
			renderConsumer.Stop(ctx),
			blobs.Close(ctx),
		)
	}, nil
}

func blobConfig(cfg pkgconfig.Config) store.Config {
	return store.Config{
		Driver:  cfg.GetString("blob.driver"),
		BaseURL: cfg.GetString("blob.base_url"),
		Memory: &store.MemoryConfig{
			MaxBlobs: int(cfg.GetInt("blob.memory.max_blobs")),
		},
		Disk: &store.DiskConfig{
			Dir: cfg.GetString("blob.disk.dir"),
		},
		Redis: &store.RedisConfig{
			Addr:     cfg.GetString("blob.redis.addr"),
			Username: cfg.GetString("blob.redis.username"),
			Password: cfg.GetString("blob.redis.password"),
			DB:       int(cfg.GetInt("blob.redis.db")),
			Prefix:   cfg.GetString("blob.redis.prefix"),
			TTL:      cfg.GetDuration("blob.redis.ttl"),
		},
		SQLite: &store.SQLiteConfig{
			Path: cfg.GetString("blob.sqlite.path"),
		},
	}
}
