package importer

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/janbuchar/firefly-iii-fio-importer/internal/dateutils"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/firefly"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/models"
)

// Writer submits classified transactions to the ledger one at a time, in
// statement order. The ledger deduplicates on the transaction hash, so a
// rejection whose every message flags a duplicate counts as a skip; any
// other rejection is fatal to the run.
type Writer struct {
	client *firefly.Client
}

// NewWriter creates a writer backed by the given ledger client.
func NewWriter(client *firefly.Client) *Writer {
	return &Writer{client: client}
}

// Submit stores one transaction and reports whether the ledger accepted it.
// A duplicate rejection returns (false, nil).
func (w *Writer) Submit(ctx context.Context, tx models.Transaction) (bool, error) {
	err := w.client.StoreTransaction(ctx, tx)
	if err == nil {
		return true, nil
	}

	var rejection *firefly.UploadError
	if errors.As(err, &rejection) && rejection.AllDuplicates() {
		log.WithFields(logrus.Fields{
			"type": tx.Type,
			"date": dateutils.ToISODate(tx.Date),
		}).Info("Ignoring transaction already present in the ledger")
		return false, nil
	}

	return false, err
}
