// Package iban derives Czech IBANs from the bank code and local account
// number fields of a bank statement line.
package iban

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	countryCode = "CZ"
	// Czech BBAN layout: 4-digit bank code followed by a 16-digit account
	// number (6-digit prefix + 10-digit number, both zero padded).
	bankCodeWidth = 4
	accountWidth  = 16
)

var (
	errEmptyField = errors.New("empty field")

	separators  = strings.NewReplacer("-", "", " ", "")
	ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)
)

// Derive builds the IBAN for a Czech domestic account. The local account
// number may contain dashes or spaces between the prefix and the number;
// those are stripped before derivation. An error means the fields cannot
// name a domestic account (card payments, fees and foreign formats all lack
// one) and the counterparty must be treated as unknown, not that the run
// should abort.
func Derive(bankCode, accountNumber string) (string, error) {
	code, err := normalizeField(bankCode, bankCodeWidth)
	if err != nil {
		return "", fmt.Errorf("bank code %q: %w", bankCode, err)
	}

	number, err := normalizeField(accountNumber, accountWidth)
	if err != nil {
		return "", fmt.Errorf("account number %q: %w", accountNumber, err)
	}

	bban := code + number
	check := 98 - mod97(bban+countryCode+"00")
	return fmt.Sprintf("%s%02d%s", countryCode, check, bban), nil
}

// Valid reports whether a string is a well-formed IBAN with a correct
// check digit sum.
func Valid(iban string) bool {
	normalized := Normalize(iban)
	if !ibanPattern.MatchString(normalized) {
		return false
	}
	return mod97(normalized[4:]+normalized[:4]) == 1
}

// Normalize returns the IBAN in comparison form: uppercase, no spaces.
func Normalize(iban string) string {
	return strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
}

// normalizeField strips separator characters and left-pads with zeros to the
// fixed BBAN field width.
func normalizeField(raw string, width int) (string, error) {
	cleaned := separators.Replace(raw)
	if cleaned == "" {
		return "", errEmptyField
	}
	if len(cleaned) > width {
		return "", fmt.Errorf("longer than %d digits", width)
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("non-digit character %q", r)
		}
	}
	return strings.Repeat("0", width-len(cleaned)) + cleaned, nil
}

// mod97 computes the ISO 7064 remainder of a digit-and-letter string, with
// letters mapped to 10..35.
func mod97(s string) int {
	remainder := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			remainder = (remainder*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			remainder = (remainder*100 + int(r-'A') + 10) % 97
		}
	}
	return remainder
}
