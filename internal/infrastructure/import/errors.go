package csvimport

import (
	"fmt"

	"github.com/bricksflow/backend/internal/domain/shared"
)

// Row error codes
const (
	CodeRequired    = "REQUIRED"
	CodeTooLong     = "TOO_LONG"
	CodeFormat      = "INVALID_FORMAT"
	CodeDuplicate   = "DUPLICATE_IN_FILE"
	CodeExists      = "ALREADY_EXISTS"
	CodeRejected    = "REJECTED"
	defaultMaxError = 100
)

var (
	ErrEmptyFile       = shared.ErrInvalidInput.WithMessage("CSV file is empty")
	ErrInvalidEncoding = shared.ErrInvalidInput.WithMessage("CSV file must be UTF-8 encoded")
	ErrMalformed       = shared.ErrInvalidInput.WithMessage("CSV file is malformed")
	ErrTooManyRows     = shared.ErrInvalidInput.WithMessage("CSV file has too many rows")
)

// RowError reports why one row was not imported
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column %q: %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// Errors keeps the first max row errors and counts the rest
type Errors struct {
	items []RowError
	max   int
	total int
}

// NewErrors creates a collection holding at most max errors
func NewErrors(max int) *Errors {
	if max <= 0 {
		max = defaultMaxError
	}
	return &Errors{max: max}
}

// Add records an error
func (e *Errors) Add(err RowError) {
	e.total++
	if len(e.items) < e.max {
		e.items = append(e.items, err)
	}
}

// Items returns the kept errors
func (e *Errors) Items() []RowError {
	return e.items
}

// Total counts every error added, including dropped ones
func (e *Errors) Total() int {
	return e.total
}

// Truncated reports whether errors were dropped
func (e *Errors) Truncated() bool {
	return e.total > len(e.items)
}
