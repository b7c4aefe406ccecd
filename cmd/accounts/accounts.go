// Package accounts handles the ledger account listing command
package accounts

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/janbuchar/firefly-iii-fio-importer/cmd/root"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/config"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/export"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/firefly"
)

var all bool

// Cmd represents the accounts command
var Cmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the ledger accounts the importer can resolve against",
	Long: `List the Firefly III account registry as CSV. By default only asset
accounts are shown, since those are the ones transfers resolve to.`,
	Run: accountsFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&all, "all", "a", false, "Include expense, revenue and cash accounts")
}

func accountsFunc(cmd *cobra.Command, args []string) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		root.Log.Fatalf("Failed to initialize configuration: %v", err)
	}
	root.SetLogger(config.ConfigureLoggingFromConfig(cfg))

	if err := cfg.RequireLedger(); err != nil {
		root.Log.Fatalf("Missing configuration: %v", err)
	}

	ledger := firefly.NewClient(cfg.Firefly.URL, cfg.Firefly.Token)
	registry := firefly.NewRegistry(ledger)

	accounts, err := registry.All(cmd.Context())
	if err != nil {
		root.Log.Fatalf("Failed to fetch accounts: %v", err)
	}

	if !all {
		assets := accounts[:0]
		for _, account := range accounts {
			if account.IsAsset() {
				assets = append(assets, account)
			}
		}
		accounts = assets
	}

	var out io.Writer = os.Stdout
	if root.Output != "" {
		file, err := os.Create(root.Output)
		if err != nil {
			root.Log.Fatalf("Failed to create output file: %v", err)
		}
		defer file.Close()
		out = file
	}

	if err := export.WriteAccounts(out, accounts); err != nil {
		root.Log.Fatalf("Failed to write account listing: %v", err)
	}
}
