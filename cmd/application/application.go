// Package application provides the application interface for roster commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            client, err := app.Roster()
//	            if err != nil {
//	                return err
//	            }
//	            result, err := client.Process(cmd.Context(), args[0], "")
//	            // ... render result
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    RosterFunc: func(opts ...roster.Option) (roster.Client, error) {
//	        return roster.New(opts...)
//	    },
//	}
//	cmd := merge.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/roster"
)

// Application provides the application interface that commands need.
// The App struct from cmd/roster/app implements this interface.
type Application interface {
	// Roster returns a new client configured from the application
	// configuration. opts are applied after the configured defaults, so
	// command flags win.
	Roster(opts ...roster.Option) (roster.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Quiet reports whether informational output should be suppressed.
	Quiet() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
