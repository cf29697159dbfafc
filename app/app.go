package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/jekabolt/shopdesk-reports/config"
	httpapi "github.com/jekabolt/shopdesk-reports/internal/api/http"
	"github.com/jekabolt/shopdesk-reports/internal/auth/jwt"
	"github.com/jekabolt/shopdesk-reports/internal/dependency"
	gerr "github.com/jekabolt/shopdesk-reports/internal/errors"
	"github.com/jekabolt/shopdesk-reports/internal/metrics"
	"github.com/jekabolt/shopdesk-reports/internal/snapshot"
	"github.com/jekabolt/shopdesk-reports/internal/store"
)

// App is the main application
type App struct {
	hs    *httpapi.Server
	c     *config.Config
	close func()
	stop  sync.Once
	done  chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:     c,
		close: func() {},
		done:  make(chan struct{}),
	}
}

// NewEngine builds the report engine from the reports section.
func NewEngine(c *config.Config) (*metrics.Engine, error) {
	return metrics.New(c.Reports, slog.Default().With(slog.String("component", "metrics")))
}

// NewSource opens the configured document source. The returned func
// releases it. loc is the report zone the store windows are read in.
func NewSource(ctx context.Context, c *config.Config, loc *time.Location) (dependency.Source, func(), error) {
	switch c.Source.Kind {
	case config.SourceFile:
		return snapshot.NewFile(c.Source.Path), func() {}, nil
	case config.SourceMySQL:
		db, err := store.New(ctx, c.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("couldn't connect to mysql: %w", err)
		}
		db.SetLocation(loc)
		return db.Documents(), db.Close, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", gerr.ErrUnknownSource, c.Source.Kind)
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	slog.Default().InfoContext(ctx, "starting shopdesk reports",
		slog.String("source", a.c.Source.Kind),
		slog.String("timezone", a.c.Reports.Timezone),
	)

	engine, err := NewEngine(a.c)
	if err != nil {
		slog.Default().ErrorContext(ctx, "invalid reports config", slog.String("err", err.Error()))
		return err
	}

	src, closeSrc, err := NewSource(ctx, a.c, engine.Location())
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't open document source", slog.String("err", err.Error()))
		return err
	}
	a.close = closeSrc

	auth := jwt.New(a.c.Auth)
	if auth == nil {
		slog.Default().WarnContext(ctx, "auth.jwt_secret is empty, report API is unauthenticated")
	}

	a.hs = httpapi.New(&a.c.HTTP, a.c.Chart, engine, src, auth)
	if err = a.hs.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server", slog.String("err", err.Error()))
		return err
	}

	go func() {
		<-a.hs.Done()
		a.Stop(context.Background())
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	a.stop.Do(func() {
		a.close()
		close(a.done)
	})
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
