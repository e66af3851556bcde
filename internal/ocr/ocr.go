// Package ocr delegates document text recognition to an external cloud
// vision API. Nothing in this service reads image bytes itself.
package ocr

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the vision API is unreachable or the
// circuit breaker is open.
var ErrUnavailable = errors.New("ocr service unavailable")

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, content []byte, contentType string) (string, error)
}
