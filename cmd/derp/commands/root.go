// Package commands implements the CLI commands for the derp cache tool.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"go.trai.ch/derp/internal/adapters/logger"
	"go.trai.ch/derp/internal/adapters/telemetry"
	"go.trai.ch/derp/internal/app"
	"go.trai.ch/derp/internal/build"
	"go.trai.ch/derp/internal/core/domain"
)

// CLI represents the command line interface for derp.
type CLI struct {
	app     Application
	logger  *logger.Logger
	rootCmd *cobra.Command

	// shutdownTracing flushes the span provider installed by --trace.
	shutdownTracing func(context.Context) error
}

// Application represents the application logic interface.
type Application interface {
	List(ctx context.Context, opts app.ListOptions) ([]domain.Record, error)
	Show(ctx context.Context, fingerprint string) (any, error)
	Clear(ctx context.Context) error
}

// New creates a new CLI instance with the given app.
func New(a Application, log *logger.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "derp",
		Short:         "A stupid-simple persistent call cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log cache activity at debug level")
	rootCmd.PersistentFlags().Bool("trace", false, "Log completed trace spans (implies --verbose)")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		trace, _ := cmd.Flags().GetBool("trace")

		if verbose || trace {
			c.logger.SetLevel(slog.LevelDebug)
		}

		if trace {
			c.shutdownTracing = telemetry.InstallProvider(c.logger)
		}
	}

	rootCmd.AddCommand(c.newIndexCmd())
	rootCmd.AddCommand(c.newGetCmd())
	rootCmd.AddCommand(c.newClearCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()

	// Flush pending spans so --trace output lands before the process exits.
	if c.shutdownTracing != nil {
		_ = c.shutdownTracing(ctx)
	}

	return err
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
