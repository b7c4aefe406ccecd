package fio

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/janbuchar/firefly-iii-fio-importer/internal/dateutils"
)

// Transaction is one statement line from the Fio read API, flattened from
// the column-oriented wire format. Amount keeps the bank's sign; direction
// is derived from it downstream.
type Transaction struct {
	Date               time.Time
	Amount             decimal.Decimal
	Currency           string
	AccountNumber      string
	BankCode           string
	AccountName        string
	UserIdentification string
	RecipientMessage   string
	InstructionID      int64
	TransactionID      int64
}

// AccountInfo identifies the account a statement belongs to.
type AccountInfo struct {
	AccountID string
	BankCode  string
	Currency  string
	IBAN      string
	BIC       string
}

// statementEnvelope mirrors the Fio periods response.
type statementEnvelope struct {
	AccountStatement struct {
		Info            infoPayload `json:"info"`
		TransactionList struct {
			Transaction []transactionPayload `json:"transaction"`
		} `json:"transactionList"`
	} `json:"accountStatement"`
}

type infoPayload struct {
	AccountID string `json:"accountId"`
	BankID    string `json:"bankId"`
	Currency  string `json:"currency"`
	IBAN      string `json:"iban"`
	BIC       string `json:"bic"`
}

func (p infoPayload) toAccountInfo() AccountInfo {
	return AccountInfo{
		AccountID: p.AccountID,
		BankCode:  p.BankID,
		Currency:  p.Currency,
		IBAN:      p.IBAN,
		BIC:       p.BIC,
	}
}

// The statement serializes every field as a "columnN" object; the numbering
// is Fio's, not ours.
type transactionPayload struct {
	Date               *stringColumn  `json:"column0"`
	Amount             *decimalColumn `json:"column1"`
	AccountNumber      *stringColumn  `json:"column2"`
	BankCode           *stringColumn  `json:"column3"`
	UserIdentification *stringColumn  `json:"column7"`
	AccountName        *stringColumn  `json:"column10"`
	Currency           *stringColumn  `json:"column14"`
	RecipientMessage   *stringColumn  `json:"column16"`
	InstructionID      *intColumn     `json:"column17"`
	TransactionID      *intColumn     `json:"column22"`
}

type stringColumn struct {
	Value string `json:"value"`
}

type decimalColumn struct {
	Value decimal.Decimal `json:"value"`
}

type intColumn struct {
	Value int64 `json:"value"`
}

func (p transactionPayload) toTransaction() (Transaction, error) {
	if p.Date == nil || p.Amount == nil {
		return Transaction{}, errIncompleteRow
	}

	date, err := dateutils.ParseAPIDate(p.Date.Value)
	if err != nil {
		return Transaction{}, err
	}

	tx := Transaction{
		Date:   date,
		Amount: p.Amount.Value,
	}
	if p.AccountNumber != nil {
		tx.AccountNumber = p.AccountNumber.Value
	}
	if p.BankCode != nil {
		tx.BankCode = p.BankCode.Value
	}
	if p.UserIdentification != nil {
		tx.UserIdentification = p.UserIdentification.Value
	}
	if p.AccountName != nil {
		tx.AccountName = p.AccountName.Value
	}
	if p.Currency != nil {
		tx.Currency = p.Currency.Value
	}
	if p.RecipientMessage != nil {
		tx.RecipientMessage = p.RecipientMessage.Value
	}
	if p.InstructionID != nil {
		tx.InstructionID = p.InstructionID.Value
	}
	if p.TransactionID != nil {
		tx.TransactionID = p.TransactionID.Value
	}
	return tx, nil
}
