// Package event defines the rating event stream port.
package event

import (
	"context"

	"github.com/mediarate/mediarate/pkg/model"
)

// Producer publishes rating events after successful ledger writes.
type Producer interface {
	Publish(ctx context.Context, e model.RatingEvent) error
	Close()
}

// NopProducer discards all events. It is wired when no broker is
// configured so the ledger always has a producer to call.
type NopProducer struct{}

// Publish discards the event.
func (NopProducer) Publish(ctx context.Context, e model.RatingEvent) error { return nil }

// Close does nothing.
func (NopProducer) Close() {}
