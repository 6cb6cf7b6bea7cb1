package printing

import (
	"context"
	"time"
)

// RenderRequest is one HTML document to print
type RenderRequest struct {
	HTML  string
	Title string
	// Timeout replaces the renderer default when set
	Timeout time.Duration
}

// RenderResult is the printed document
type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// PDFRenderer prints HTML to PDF
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// Render failure codes
const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
)

// RenderError is a failed render with its failure code
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

// NewRenderError creates a RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the browser ran out of time
func (e *RenderError) Timeout() bool {
	return e.Code == ErrCodeRenderTimeout
}
