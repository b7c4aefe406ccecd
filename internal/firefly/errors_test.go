package firefly

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllDuplicates(t *testing.T) {
	tests := []struct {
		name   string
		errors map[string][]string
		want   bool
	}{
		{
			name:   "single duplicate message",
			errors: map[string][]string{"amount": {"Duplicate of transaction #5"}},
			want:   true,
		},
		{
			name: "duplicates across several fields",
			errors: map[string][]string{
				"amount":      {"Duplicate of transaction #5"},
				"description": {"duplicate entry found"},
			},
			want: true,
		},
		{
			name: "mixed duplicate and real error is fatal",
			errors: map[string][]string{
				"amount": {"Duplicate of transaction #5"},
				"date":   {"Invalid date"},
			},
			want: false,
		},
		{
			name:   "mixed messages within one field",
			errors: map[string][]string{"amount": {"Duplicate of transaction #5", "Amount must be positive"}},
			want:   false,
		},
		{
			name:   "case insensitive prefix",
			errors: map[string][]string{"amount": {"DUPLICATE of transaction #5"}},
			want:   true,
		},
		{
			name:   "duplicate mentioned but not as prefix",
			errors: map[string][]string{"amount": {"This is a duplicate"}},
			want:   false,
		},
		{
			name:   "no messages at all",
			errors: map[string][]string{},
			want:   false,
		},
		{
			name:   "nil errors map",
			errors: nil,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &UploadError{Message: "Validation failed", Errors: tt.errors}
			assert.Equal(t, tt.want, e.AllDuplicates())
		})
	}
}

func TestUploadErrorMessage(t *testing.T) {
	e := &UploadError{
		Message: "Validation failed",
		Errors: map[string][]string{
			"date":   {"Invalid date"},
			"amount": {"Duplicate of transaction #5"},
		},
	}
	assert.Equal(t,
		"firefly: transaction rejected: Validation failed (amount: Duplicate of transaction #5, date: Invalid date)",
		e.Error())
}
