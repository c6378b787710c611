package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/shadergrid/internal/ctxlog"
	"github.com/specialistvlad/shadergrid/pkg/engine"
	"github.com/specialistvlad/shadergrid/pkg/engine/remote"
	"github.com/specialistvlad/shadergrid/pkg/nodes"
	"github.com/specialistvlad/shadergrid/pkg/registry"
	"github.com/specialistvlad/shadergrid/pkg/shader"
)

// coreModules are registered when NewApp is given none.
var coreModules = []registry.Module{
	&nodes.Module{},
}

// Dialer opens the connection a remote engine talks over. The returned
// function closes it.
type Dialer func(ctx context.Context, cfg remote.DialConfig) (remote.Conn, func(), error)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	dial     Dialer
}

// Option customizes an App.
type Option func(*App)

// WithModules replaces the core node modules.
func WithModules(modules ...registry.Module) Option {
	return func(a *App) {
		a.registry = registry.New()
		for _, m := range modules {
			m.Register(a.registry)
		}
	}
}

// WithDialer replaces the socket.io dialer.
func WithDialer(d Dialer) Option {
	return func(a *App) { a.dial = d }
}

// NewApp is the constructor for the main application. Results are written to
// outW and logs to logW. The registry is validated before the App is
// returned.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		dial:   dialSocketIO,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.registry == nil {
		WithModules(coreModules...)(a)
	}
	logger.Debug("Node modules registered.", "kinds", len(a.registry.Kinds()))

	if err := a.registry.ValidateRegistry(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")
	return a, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// withLogger attaches the App's logger to ctx.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// openEngine builds the configured engine. The returned function releases it.
func (a *App) openEngine(ctx context.Context) (engine.Engine, *engine.Recorder, func(), error) {
	cfg := a.config.Engine
	switch cfg.Kind {
	case EngineSocketIO:
		conn, closeFn, err := a.dial(ctx, remote.DialConfig{
			URL:                cfg.URL,
			Namespace:          cfg.Namespace,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
			ConnectTimeout:     cfg.ConnectTimeout,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		eng := remote.New(conn, remote.WithTimeout(cfg.Timeout), remote.WithNodeTypes(a.engineType))
		return eng, nil, closeFn, nil
	case EngineRecorder:
		rec := engine.NewRecorder()
		return rec, rec, func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown engine %q", cfg.Kind)
	}
}

func (a *App) engineType(kind shader.Kind) (uint32, bool) {
	e, ok := a.registry.Lookup(kind)
	if !ok {
		return 0, false
	}
	return e.EngineType, true
}

func dialSocketIO(ctx context.Context, cfg remote.DialConfig) (remote.Conn, func(), error) {
	client, err := remote.Dial(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { client.Disconnect() }, nil
}
