// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/janbuchar/firefly-iii-fio-importer/internal/config"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/fio"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/firefly"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/importer"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/store"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fio-firefly",
		Short: "One-way sync of Fio bank transactions into Firefly III.",
		Long: `fio-firefly reads the statement of a Fio bank account and stores each
transaction in a Firefly III instance, resolving counterparty accounts by
IBAN and classifying every movement as a withdrawal, deposit or transfer.
Repeated runs are safe; the ledger rejects transactions it already holds.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Bootstrap logging from the environment; commands reconfigure
			// once the full configuration is loaded
			config.LoadEnv()
			SetLogger(config.ConfigureLogging())
		},
	}

	// Common flags accessible to all commands
	Output string

	// Specific sync command flags
	DryRun bool
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&Output, "output", "o", "", "Write CSV output to a file instead of stdout")
}

// SetLogger installs the logger on the root command and every package that
// logs
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	Log = logger
	fio.SetLogger(logger)
	firefly.SetLogger(logger)
	importer.SetLogger(logger)
	store.SetLogger(logger)
}
