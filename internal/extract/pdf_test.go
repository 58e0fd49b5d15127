package extract

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestPDFExtractRejectsGarbage(t *testing.T) {
	t.Parallel()

	p := NewPDF(zap.NewNop())

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty input", data: nil},
		{name: "not a pdf", data: []byte("definitely not a pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := p.Extract(context.Background(), tt.data); !errors.Is(err, ErrUnreadable) {
				t.Fatalf("expected ErrUnreadable, got %v", err)
			}
		})
	}
}
