package firefly

import (
	"fmt"
	"sort"
	"strings"
)

// StatusError is a non-success response without a usable validation payload.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("firefly: unexpected response %d: %s", e.StatusCode, e.Body)
}

// UploadError is the structured rejection payload Firefly III returns when a
// transaction store fails validation: a message plus per-field lists of
// messages.
type UploadError struct {
	StatusCode int                 `json:"-"`
	Message    string              `json:"message"`
	Errors     map[string][]string `json:"errors"`
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("firefly: transaction rejected: %s (%s)", e.Message, e.flatten())
}

// AllDuplicates reports whether every field-level message flags a duplicate.
// Firefly prefixes duplicate-hash rejections with the word "duplicate", so a
// payload made up entirely of such messages means the transaction was
// already imported and the rejection is safe to ignore. A single
// non-duplicate message makes the whole rejection fatal.
func (e *UploadError) AllDuplicates() bool {
	total := 0
	for _, messages := range e.Errors {
		for _, message := range messages {
			total++
			if !strings.HasPrefix(strings.ToLower(message), "duplicate") {
				return false
			}
		}
	}
	return total > 0
}

func (e *UploadError) flatten() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Errors[field], "; ")))
	}
	return strings.Join(parts, ", ")
}
