// Package sink delivers submitted inspection drafts to their destinations.
package sink

import (
	"context"
	"fmt"

	"github.com/safehaven-ai/safehaven-backend/internal/inspection/domain"
)

// Sink accepts a fully populated draft and reports success or failure.
type Sink interface {
	Name() string
	Submit(ctx context.Context, d domain.Draft, receipt domain.Receipt) error
}

// Chain hands a draft to each sink in order and stops at the first failure.
type Chain []Sink

func (c Chain) Name() string { return "chain" }

func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name()
	}
	return names
}

func (c Chain) Submit(ctx context.Context, d domain.Draft, receipt domain.Receipt) error {
	for _, s := range c {
		if err := s.Submit(ctx, d, receipt); err != nil {
			return fmt.Errorf("%s sink: %w", s.Name(), err)
		}
	}
	return nil
}
