package firefly

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janbuchar/firefly-iii-fio-importer/internal/models"
)

const registryBody = `{
	"data": [
		{"id": "1", "attributes": {"name": "Checking", "type": "asset", "iban": "CZ7920100000002111111111"}},
		{"id": "2", "attributes": {"name": "Groceries", "type": "expense", "iban": "CZ6508000000192000145399"}},
		{"id": "3", "attributes": {"name": "Cash wallet", "type": "cash", "iban": ""}}
	],
	"meta": {"pagination": {"current_page": 1, "total_pages": 1}}
}`

func TestResolve(t *testing.T) {
	fetches := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte(registryBody))
	}))

	registry := NewRegistry(client)
	ctx := context.Background()

	account, err := registry.Resolve(ctx, "CZ7920100000002111111111")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "1", account.ID)
	assert.Equal(t, models.AccountAsset, account.Type)

	// Lookups are normalized, not byte compared.
	account, err = registry.Resolve(ctx, "cz79 2010 0000 0021 1111 1111")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "1", account.ID)

	account, err = registry.Resolve(ctx, "CZ6508000000192000145399")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, models.AccountExpense, account.Type)

	account, err = registry.Resolve(ctx, "CZ5520100000001234560100")
	require.NoError(t, err)
	assert.Nil(t, account, "unknown IBAN resolves to absent, not an error")

	assert.Equal(t, 1, fetches, "the account list is fetched once per run")
}

func TestResolveEmptyIBAN(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("empty IBAN must not trigger a fetch")
	}))

	account, err := NewRegistry(client).Resolve(context.Background(), "  ")
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestResolveFetchFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := NewRegistry(client).Resolve(context.Background(), "CZ7920100000002111111111")
	assert.Error(t, err, "a failed registry fetch aborts the run")
}

func TestAll(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(registryBody))
	}))

	accounts, err := NewRegistry(client).All(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}
