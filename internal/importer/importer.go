package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/janbuchar/firefly-iii-fio-importer/internal/dateutils"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/export"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/fio"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/firefly"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/models"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/store"
)

// Options tune a sync run.
type Options struct {
	LookbackDays int
	OverlapDays  int
	Location     *time.Location
	DryRun       bool
	DryRunOutput io.Writer
}

// Importer wires the Fio statement feed to the Firefly III ledger for a
// single one-way sync run. It owns the run-scoped account registry; build a
// fresh Importer per run.
type Importer struct {
	bank     *fio.Client
	ledger   *firefly.Client
	registry *firefly.Registry
	names    *store.NameStore
	opts     Options

	now func() time.Time
}

// New creates an importer for one run.
func New(bank *fio.Client, ledger *firefly.Client, names *store.NameStore, opts Options) *Importer {
	return &Importer{
		bank:     bank,
		ledger:   ledger,
		registry: firefly.NewRegistry(ledger),
		names:    names,
		opts:     opts,
		now:      time.Now,
	}
}

// Summary reports what a run did. A run that found nothing new is a normal,
// successful run.
type Summary struct {
	Fetched int
	Created int
	Skipped int
}

// Run performs the full sync: resolve the home account, compute the window,
// fetch, classify, submit. Everything runs sequentially; the first fatal
// error aborts the run, leaving already-submitted transactions committed
// (the next run's overlap plus ledger-side dedup makes that safe).
func (i *Importer) Run(ctx context.Context) (Summary, error) {
	info, err := i.bank.Info(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("reading bank account info: %w", err)
	}

	own, err := i.registry.Resolve(ctx, info.IBAN)
	if err != nil {
		return Summary{}, err
	}
	if own == nil {
		return Summary{}, fmt.Errorf("account %q not found in the ledger", info.IBAN)
	}

	last, err := i.ledger.LastTransactionDate(ctx, own.ID)
	if err != nil {
		return Summary{}, fmt.Errorf("reading last imported transaction: %w", err)
	}
	if last != nil {
		log.WithField("since", dateutils.ToISODate(*last)).Info("Resuming after the most recent import")
	} else {
		log.Info("No previous import found, fetching the full lookback window")
	}

	from, to := Window(last, i.now().In(i.location()), i.opts.LookbackDays, i.opts.OverlapDays)

	raw, err := i.bank.Period(ctx, from, to)
	if err != nil {
		return Summary{}, fmt.Errorf("fetching bank transactions: %w", err)
	}
	log.WithFields(logrus.Fields{
		"count": len(raw),
		"from":  dateutils.ToISODate(from),
		"to":    dateutils.ToISODate(to),
	}).Info("Fetched transactions from the bank")

	classifier := NewClassifier(i.registry, i.names, own)
	transactions := make([]models.Transaction, 0, len(raw))
	for _, item := range raw {
		tx, err := classifier.Classify(ctx, item)
		if err != nil {
			return Summary{}, err
		}
		transactions = append(transactions, tx)
	}

	summary := Summary{Fetched: len(transactions)}

	if i.opts.DryRun {
		if err := export.WriteTransactions(i.dryRunOutput(), transactions); err != nil {
			return summary, fmt.Errorf("writing dry-run output: %w", err)
		}
		return summary, nil
	}

	writer := NewWriter(i.ledger)
	for _, tx := range transactions {
		created, err := writer.Submit(ctx, tx)
		if err != nil {
			return summary, err
		}
		if created {
			summary.Created++
		} else {
			summary.Skipped++
		}
	}

	return summary, nil
}

func (i *Importer) location() *time.Location {
	if i.opts.Location != nil {
		return i.opts.Location
	}
	return time.UTC
}

func (i *Importer) dryRunOutput() io.Writer {
	if i.opts.DryRunOutput != nil {
		return i.opts.DryRunOutput
	}
	return os.Stdout
}
