// Package sync handles the transaction import command
package sync

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/janbuchar/firefly-iii-fio-importer/cmd/root"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/config"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/fio"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/firefly"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/importer"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/store"
)

// Cmd represents the sync command
var Cmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch new bank transactions and store them in the ledger",
	Long: `Fetch transactions from the Fio bank API since the most recent import
known to Firefly III and store each one in the ledger. Duplicate
rejections are expected on the overlap day and are skipped.`,
	Run: syncFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&root.DryRun, "dry-run", "n", false, "Classify transactions and print them as CSV without writing to the ledger")
}

func syncFunc(cmd *cobra.Command, args []string) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		root.Log.Fatalf("Failed to initialize configuration: %v", err)
	}
	root.SetLogger(config.ConfigureLoggingFromConfig(cfg))

	if err := cfg.RequireSync(); err != nil {
		root.Log.Fatalf("Missing configuration: %v", err)
	}

	location, err := cfg.Location()
	if err != nil {
		root.Log.Fatalf("Invalid statement time zone: %v", err)
	}

	bank := fio.NewClient(cfg.Fio.Token,
		fio.WithBaseURL(cfg.Fio.BaseURL),
		fio.WithCooldown(time.Duration(cfg.Fio.CooldownSeconds)*time.Second),
	)
	ledger := firefly.NewClient(cfg.Firefly.URL, cfg.Firefly.Token)

	names := store.NewNameStore(cfg.Counterparties.File)
	if err := names.Load(); err != nil {
		root.Log.Warnf("Failed to load counterparty overrides: %v", err)
		names = nil
	}

	opts := importer.Options{
		LookbackDays: cfg.Sync.LookbackDays,
		OverlapDays:  cfg.Sync.OverlapDays,
		Location:     location,
		DryRun:       root.DryRun,
	}

	if root.DryRun && root.Output != "" {
		file, err := os.Create(root.Output)
		if err != nil {
			root.Log.Fatalf("Failed to create output file: %v", err)
		}
		defer file.Close()
		opts.DryRunOutput = file
	}

	summary, err := importer.New(bank, ledger, names, opts).Run(cmd.Context())
	if err != nil {
		root.Log.Fatalf("Import failed: %v", err)
	}

	root.Log.WithFields(logrus.Fields{
		"fetched": summary.Fetched,
		"created": summary.Created,
		"skipped": summary.Skipped,
	}).Info("Import complete")
}
