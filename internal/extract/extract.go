// Package extract turns uploaded documents into plain text for analysis.
package extract

import (
	"context"
	"errors"
)

// ErrUnreadable marks a document that yielded no usable text. The user is
// asked to resubmit a different file.
var ErrUnreadable = errors.New("document is unreadable")

// Extractor extracts plain text from raw document bytes.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}
