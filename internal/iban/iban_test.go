package iban

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name          string
		bankCode      string
		accountNumber string
		want          string
	}{
		{
			name:          "account with prefix",
			bankCode:      "0800",
			accountNumber: "19-2000145399",
			want:          "CZ6508000000192000145399",
		},
		{
			name:          "fio style dash separator",
			bankCode:      "2010",
			accountNumber: "123456-0100",
			want:          "CZ5520100000001234560100",
		},
		{
			name:          "short number without prefix",
			bankCode:      "2010",
			accountNumber: "0100",
			want:          "CZ9120100000000000000100",
		},
		{
			name:          "spaces tolerated as separators",
			bankCode:      "0800",
			accountNumber: "19 2000145399",
			want:          "CZ6508000000192000145399",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Derive(tt.bankCode, tt.accountNumber)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, Valid(got), "derived IBAN must pass validation")
		})
	}
}

func TestDeriveFailures(t *testing.T) {
	tests := []struct {
		name          string
		bankCode      string
		accountNumber string
	}{
		{name: "empty account number", bankCode: "2010", accountNumber: ""},
		{name: "separator only account number", bankCode: "2010", accountNumber: "-"},
		{name: "empty bank code", bankCode: "", accountNumber: "123456"},
		{name: "letters in account number", bankCode: "2010", accountNumber: "12AB56"},
		{name: "foreign format with slash", bankCode: "2010", accountNumber: "123/456"},
		{name: "account number too long", bankCode: "2010", accountNumber: "12345678901234567"},
		{name: "bank code too long", bankCode: "20100", accountNumber: "123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(tt.bankCode, tt.accountNumber)
			assert.Error(t, err)
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("CZ6508000000192000145399"))
	assert.True(t, Valid("CZ65 0800 0000 1920 0014 5399"))
	assert.True(t, Valid("cz6508000000192000145399"))

	// One flipped digit must break the checksum.
	assert.False(t, Valid("CZ6508000000192000145398"))
	assert.False(t, Valid("CZ65"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("XXXXXXXXXXXXXXXXXXXX"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "CZ6508000000192000145399", Normalize("cz65 0800 0000 1920 0014 5399"))
}
