// Package app provides the application context and dependency management
// for the roster CLI. It centralizes configuration, logging and the
// construction of roster clients for commands.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/roster"
	"github.com/agentstation/roster/cmd/application"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/reconciler"
)

// Compile-time interface check.
var _ application.Application = (*App)(nil)

// App represents the roster application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format flag or configured format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Quiet reports whether -q was given.
func (a *App) Quiet() bool {
	return a.config.Quiet
}

// Roster returns a new client built from the configuration. opts are
// applied last so command flags override configured values.
func (a *App) Roster(opts ...roster.Option) (roster.Client, error) {
	base, err := a.rosterOptions()
	if err != nil {
		return nil, err
	}
	client, err := roster.New(append(base, opts...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "roster", "", err)
	}
	return client, nil
}

// rosterOptions constructs roster options from the app configuration.
func (a *App) rosterOptions() ([]roster.Option, error) {
	opts := []roster.Option{roster.WithLogger(a.logger)}

	if a.config.Pipeline != "" {
		p, err := reconciler.ParsePipeline(a.config.Pipeline)
		if err != nil {
			return nil, errors.NewConfigError("pipeline", err.Error(), err)
		}
		opts = append(opts, roster.WithPipeline(p))
	}
	if a.config.NamePolicy != "" {
		p, err := reconciler.ParsePolicy(a.config.NamePolicy)
		if err != nil {
			return nil, errors.NewConfigError("name_policy", err.Error(), err)
		}
		opts = append(opts, roster.WithNamePolicy(p))
	}
	if a.config.EmailPolicy != "" {
		p, err := reconciler.ParsePolicy(a.config.EmailPolicy)
		if err != nil {
			return nil, errors.NewConfigError("email_policy", err.Error(), err)
		}
		opts = append(opts, roster.WithEmailPolicy(p))
	}
	if a.config.Sheet != "" {
		opts = append(opts, roster.WithSheet(a.config.Sheet))
	}
	if len(a.config.Columns) > 0 {
		opts = append(opts, roster.WithColumnMapping(a.config.Columns))
	}

	return opts, nil
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return &errors.ValidationError{Field: "config", Message: "cannot be nil"}
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		a.logger = logger
		return nil
	}
}
