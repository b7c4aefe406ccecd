package fio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStatement = `{
  "accountStatement": {
    "info": {
      "accountId": "2111111111",
      "bankId": "2010",
      "currency": "CZK",
      "iban": "CZ7920100000002111111111",
      "bic": "FIOBCZPPXXX"
    },
    "transactionList": {
      "transaction": [
        {
          "column0": {"value": "2024-01-10+0100", "name": "Datum"},
          "column1": {"value": -500.0, "name": "Objem"},
          "column2": {"value": "123456-0100", "name": "Protiúčet"},
          "column3": {"value": "2010", "name": "Kód banky"},
          "column7": {"value": "Jan Novák", "name": "Uživatelská identifikace"},
          "column10": {"value": "ACME Corp", "name": "Název protiúčtu"},
          "column14": {"value": "CZK", "name": "Měna"},
          "column16": {"value": "Invoice 42", "name": "Zpráva pro příjemce"},
          "column17": {"value": 1001, "name": "ID pokynu"},
          "column22": {"value": 26962199069, "name": "ID pohybu"}
        },
        {
          "column0": {"value": "2024-01-11+0100", "name": "Datum"},
          "column1": {"value": 1200.5, "name": "Objem"},
          "column17": {"value": 1002, "name": "ID pokynu"},
          "column22": {"value": 26962199070, "name": "ID pohybu"}
        },
        {
          "column1": {"value": 1.0, "name": "Objem"}
        }
      ]
    }
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-token", WithBaseURL(server.URL), WithCooldown(0))
}

func TestPeriod(t *testing.T) {
	var requestedPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleStatement))
	})

	from := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)

	transactions, err := client.Period(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, "/periods/test-token/2024-01-09/2024-01-12/transactions.json", requestedPath)

	// The third row has no date and is skipped.
	require.Len(t, transactions, 2)

	first := transactions[0]
	assert.Equal(t, "2024-01-10", first.Date.Format("2006-01-02"))
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(-500)), "signed amount preserved")
	assert.Equal(t, "123456-0100", first.AccountNumber)
	assert.Equal(t, "2010", first.BankCode)
	assert.Equal(t, "ACME Corp", first.AccountName)
	assert.Equal(t, "Jan Novák", first.UserIdentification)
	assert.Equal(t, "Invoice 42", first.RecipientMessage)
	assert.Equal(t, int64(1001), first.InstructionID)
	assert.Equal(t, int64(26962199069), first.TransactionID)

	second := transactions[1]
	assert.True(t, second.Amount.Equal(decimal.NewFromFloat(1200.5)))
	assert.Empty(t, second.AccountName, "absent columns decode to empty values")
}

func TestInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleStatement))
	})

	info, err := client.Info(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "CZ7920100000002111111111", info.IBAN)
	assert.Equal(t, "2111111111", info.AccountID)
	assert.Equal(t, "2010", info.BankCode)
	assert.Equal(t, "CZK", info.Currency)
	assert.Equal(t, "FIOBCZPPXXX", info.BIC)
}

func TestStatementErrorResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token conflict", http.StatusConflict)
	})

	_, err := client.Period(context.Background(), time.Now(), time.Now())
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.StatusCode)
	assert.NotContains(t, statusErr.Error(), "test-token", "token must not leak into errors")
}

func TestCooldownPacing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleStatement))
	})
	client.cooldown = 30 * time.Second

	var slept time.Duration
	client.sleep = func(d time.Duration) { slept += d }

	_, err := client.Period(context.Background(), time.Now(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, slept, "first request needs no pause")

	_, err = client.Period(context.Background(), time.Now(), time.Now())
	require.NoError(t, err)
	assert.Greater(t, slept, 29*time.Second, "second request waits out the cooldown")
}
