// Package export renders importer output as CSV, for dry runs and for the
// account listing command.
package export

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/janbuchar/firefly-iii-fio-importer/internal/dateutils"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/models"
)

type transactionRow struct {
	Type            string `csv:"Type"`
	Date            string `csv:"Date"`
	Amount          string `csv:"Amount"`
	Description     string `csv:"Description"`
	Notes           string `csv:"Notes"`
	ExternalID      string `csv:"ExternalID"`
	SourceID        string `csv:"SourceID"`
	SourceName      string `csv:"SourceName"`
	DestinationID   string `csv:"DestinationID"`
	DestinationName string `csv:"DestinationName"`
}

// WriteTransactions writes would-be ledger submissions as CSV.
func WriteTransactions(w io.Writer, transactions []models.Transaction) error {
	rows := make([]transactionRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, transactionRow{
			Type:            string(tx.Type),
			Date:            dateutils.ToISODate(tx.Date),
			Amount:          tx.Amount.String(),
			Description:     tx.Description,
			Notes:           tx.Notes,
			ExternalID:      tx.ExternalID,
			SourceID:        tx.SourceID,
			SourceName:      tx.SourceName,
			DestinationID:   tx.DestinationID,
			DestinationName: tx.DestinationName,
		})
	}
	return gocsv.Marshal(&rows, w)
}

type accountRow struct {
	ID   string `csv:"ID"`
	Name string `csv:"Name"`
	Type string `csv:"Type"`
	IBAN string `csv:"IBAN"`
}

// WriteAccounts writes a ledger account listing as CSV.
func WriteAccounts(w io.Writer, accounts []models.Account) error {
	rows := make([]accountRow, 0, len(accounts))
	for _, account := range accounts {
		rows = append(rows, accountRow{
			ID:   account.ID,
			Name: account.Name,
			Type: string(account.Type),
			IBAN: account.IBAN,
		})
	}
	return gocsv.Marshal(&rows, w)
}
