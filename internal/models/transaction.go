// Package models provides the data structures shared by the importer components.
package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/janbuchar/firefly-iii-fio-importer/internal/dateutils"
)

// TransactionType enumerates the transaction kinds known to Firefly III.
type TransactionType string

const (
	TypeWithdrawal TransactionType = "withdrawal"
	TypeDeposit    TransactionType = "deposit"
	TypeTransfer   TransactionType = "transfer"
)

// Transaction is a single ledger entry in the shape Firefly III accepts.
// Amount is always non-negative; direction is carried by Type and by which
// of the source/destination sides is populated. Each side carries either a
// resolved ledger account id or a free-text name, never both.
type Transaction struct {
	Type            TransactionType `json:"type"`
	Date            time.Time       `json:"-"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Notes           string          `json:"notes"`
	ExternalID      string          `json:"external_id"`
	SourceID        string          `json:"source_id,omitempty"`
	DestinationID   string          `json:"destination_id,omitempty"`
	SourceName      string          `json:"source_name,omitempty"`
	DestinationName string          `json:"destination_name,omitempty"`
}

// MarshalJSON renders the date as a plain ISO day, which is the granularity
// the bank statement provides.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{
		alias: alias(t),
		Date:  dateutils.ToISODate(t.Date),
	})
}
