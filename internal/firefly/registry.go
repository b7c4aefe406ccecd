package firefly

import (
	"context"
	"fmt"
	"strings"

	"github.com/janbuchar/firefly-iii-fio-importer/internal/iban"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/models"
)

// Registry is the run-scoped cache of ledger accounts keyed by IBAN. The
// account list is fetched once per run on first use; accounts are not
// created or renamed while a sync runs, so the registry is never refreshed.
// Construct one per run and pass it by reference, never hold it globally.
type Registry struct {
	client   *Client
	accounts []models.Account
	byIBAN   map[string]models.Account
	loaded   bool
}

// NewRegistry creates an empty registry backed by the given client.
func NewRegistry(client *Client) *Registry {
	return &Registry{client: client}
}

// Resolve returns the account whose registered IBAN matches, or nil when the
// IBAN is empty or unknown to the ledger. An unknown IBAN is a normal
// outcome; the caller falls back to the counterparty's free-text name. A
// failed registry fetch is an error and must abort the run.
func (r *Registry) Resolve(ctx context.Context, accountIBAN string) (*models.Account, error) {
	if strings.TrimSpace(accountIBAN) == "" {
		return nil, nil
	}
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}
	if account, ok := r.byIBAN[iban.Normalize(accountIBAN)]; ok {
		return &account, nil
	}
	return nil, nil
}

// All returns every registered account, fetching the list if needed.
func (r *Registry) All(ctx context.Context) ([]models.Account, error) {
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}
	return r.accounts, nil
}

func (r *Registry) ensure(ctx context.Context) error {
	if r.loaded {
		return nil
	}

	accounts, err := r.client.Accounts(ctx)
	if err != nil {
		return fmt.Errorf("fetching account registry: %w", err)
	}

	r.accounts = accounts
	r.byIBAN = make(map[string]models.Account, len(accounts))
	for _, account := range accounts {
		if account.IBAN == "" {
			continue
		}
		r.byIBAN[iban.Normalize(account.IBAN)] = account
	}
	r.loaded = true

	log.WithField("accounts", len(accounts)).Debug("Loaded ledger account registry")
	return nil
}
