// Package importer contains the translation and reconciliation engine that
// turns Fio statement lines into Firefly III transactions and writes them
// to the ledger.
package importer

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/janbuchar/firefly-iii-fio-importer/internal/fio"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/firefly"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/iban"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/models"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/store"
)

var log = logrus.New()

// SetLogger allows setting a custom logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// placeholder stands in for statement text the bank did not supply; the
// ledger must never receive empty description or notes.
const placeholder = "-"

// Classifier translates raw bank transactions into ledger transactions,
// resolving the counterparty against the account registry.
type Classifier struct {
	registry *firefly.Registry
	names    *store.NameStore
	own      *models.Account
}

// NewClassifier creates a classifier for one sync run. own is the resolved
// ledger identity of the synchronized bank account; the classifier tolerates
// nil and then leaves the own side of each transaction unset.
func NewClassifier(registry *firefly.Registry, names *store.NameStore, own *models.Account) *Classifier {
	return &Classifier{registry: registry, names: names, own: own}
}

// Classify turns one raw bank transaction into the ledger transaction to
// submit. The only error it returns is a failed registry fetch; a
// counterparty that cannot be derived or resolved is a normal outcome and
// falls back to the bank's free-text display name.
func (c *Classifier) Classify(ctx context.Context, raw fio.Transaction) (models.Transaction, error) {
	counterparty, err := c.resolveCounterparty(ctx, raw)
	if err != nil {
		return models.Transaction{}, err
	}

	tx := models.Transaction{
		Type:        decide(counterparty, raw.Amount),
		Date:        raw.Date,
		Amount:      raw.Amount.Abs(),
		Description: orPlaceholder(raw.RecipientMessage),
		Notes:       orPlaceholder(raw.UserIdentification),
		ExternalID:  externalID(raw),
	}

	switch tx.Type {
	case models.TypeWithdrawal:
		if counterparty != nil {
			tx.DestinationID = counterparty.ID
		} else {
			tx.DestinationName = c.counterpartyName(raw)
		}
		if c.own != nil {
			tx.SourceID = c.own.ID
		}

	case models.TypeDeposit:
		if counterparty != nil {
			tx.SourceID = counterparty.ID
		} else {
			tx.SourceName = c.counterpartyName(raw)
		}
		if c.own != nil {
			tx.DestinationID = c.own.ID
		}

	case models.TypeTransfer:
		// Both ends are known asset accounts; direction comes from the sign.
		if raw.Amount.Sign() > 0 {
			tx.SourceID = counterparty.ID
			if c.own != nil {
				tx.DestinationID = c.own.ID
			}
		} else {
			// The bank's user identification only repeats what the transfer
			// relationship already says; drop it on the outgoing side.
			tx.Notes = placeholder
			tx.DestinationID = counterparty.ID
			if c.own != nil {
				tx.SourceID = c.own.ID
			}
		}
	}

	return tx, nil
}

// decide picks the transaction kind. A transfer needs the counterparty to be
// a ledger-tracked asset account; a known counterparty of any other type
// (expense, revenue, cash) still yields a plain withdrawal or deposit.
func decide(counterparty *models.Account, amount decimal.Decimal) models.TransactionType {
	switch {
	case counterparty != nil && counterparty.IsAsset():
		return models.TypeTransfer
	case amount.Sign() < 0:
		return models.TypeWithdrawal
	default:
		return models.TypeDeposit
	}
}

// resolveCounterparty derives the counterparty IBAN from the statement
// fields and looks it up in the ledger registry. Derivation failures are
// expected for non-account payees (card payments, fees) and mean the
// counterparty is simply unknown.
func (c *Classifier) resolveCounterparty(ctx context.Context, raw fio.Transaction) (*models.Account, error) {
	derived, err := iban.Derive(raw.BankCode, raw.AccountNumber)
	if err != nil {
		log.WithError(err).Debug("Counterparty IBAN not derivable")
		return nil, nil
	}
	return c.registry.Resolve(ctx, derived)
}

// externalID picks the stable per-movement identifier. Some statement rows
// (fees, card clearing) carry no instruction id; the bank's movement id then
// keeps the ledger entries distinguishable.
func externalID(raw fio.Transaction) string {
	if raw.InstructionID != 0 {
		return strconv.FormatInt(raw.InstructionID, 10)
	}
	return strconv.FormatInt(raw.TransactionID, 10)
}

func (c *Classifier) counterpartyName(raw fio.Transaction) string {
	return c.names.Lookup(raw.AccountName)
}

func orPlaceholder(value string) string {
	if value == "" {
		return placeholder
	}
	return value
}
