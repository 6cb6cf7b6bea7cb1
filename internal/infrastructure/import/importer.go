package csvimport

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/bricksflow/backend/internal/domain/shared"
)

const defaultMaxRows = 5000

// Result summarises an import
type Result struct {
	TotalRows       int        `json:"total_rows"`
	Imported        int        `json:"imported"`
	Skipped         int        `json:"skipped"`
	Errors          []RowError `json:"errors"`
	ErrorsTruncated bool       `json:"errors_truncated"`
}

// Importer streams a CSV through a validator into an apply callback
type Importer struct {
	rules     []*FieldRule
	maxRows   int
	maxErrors int
}

// Option configures an Importer
type Option func(*Importer)

// WithMaxRows caps the number of data rows accepted
func WithMaxRows(n int) Option {
	return func(im *Importer) { im.maxRows = n }
}

// WithMaxErrors caps the number of row errors reported
func WithMaxErrors(n int) Option {
	return func(im *Importer) { im.maxErrors = n }
}

// NewImporter creates an importer for the given column rules
func NewImporter(rules []*FieldRule, opts ...Option) *Importer {
	im := &Importer{rules: rules, maxRows: defaultMaxRows, maxErrors: defaultMaxError}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Run validates each row and passes valid ones to apply. A RowError or
// domain error from apply skips that row; any other error stops the import.
func (im *Importer) Run(ctx context.Context, r io.Reader, apply func(ctx context.Context, row *Row) error) (*Result, error) {
	parser, err := NewParser(r)
	if err != nil {
		return nil, err
	}
	validator := NewValidator(im.rules...)
	if missing := parser.Missing(validator.Required()); len(missing) > 0 {
		return nil, ErrMalformed.WithMessage("Missing required columns: " + strings.Join(missing, ", "))
	}

	rowErrs := NewErrors(im.maxErrors)
	res := &Result{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := parser.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		res.TotalRows++
		if res.TotalRows > im.maxRows {
			return nil, ErrTooManyRows
		}

		if errs := validator.Validate(row); len(errs) > 0 {
			for _, e := range errs {
				rowErrs.Add(e)
			}
			res.Skipped++
			continue
		}

		if err := apply(ctx, row); err != nil {
			var rowErr RowError
			var domainErr *shared.DomainError
			switch {
			case errors.As(err, &rowErr):
				if rowErr.Row == 0 {
					rowErr.Row = row.Line
				}
				rowErrs.Add(rowErr)
			case errors.As(err, &domainErr):
				rowErrs.Add(RowError{Row: row.Line, Code: CodeRejected, Message: domainErr.Message})
			default:
				return nil, err
			}
			res.Skipped++
			continue
		}
		res.Imported++
	}

	res.Errors = rowErrs.Items()
	if res.Errors == nil {
		res.Errors = []RowError{}
	}
	res.ErrorsTruncated = rowErrs.Truncated()
	return res, nil
}
