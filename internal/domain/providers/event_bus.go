package providers

import (
	"context"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to hospital events
type EventBus interface {
	// Publish publishes an event to all subscribers of channel
	Publish(ctx context.Context, channel string, event *entities.HospitalEvent) error

	// Subscribe returns a channel of events; it is closed when ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *entities.HospitalEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelHospitalUpdates carries every change to the hospital collection
const EventChannelHospitalUpdates = "hospital:updates"
