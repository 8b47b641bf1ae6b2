package ports

import (
	"context"
	"time"

	"github.com/aescanero/treed/pkg/domain"
)

// NodeStorage persists node records so the forest can be rebuilt on boot.
type NodeStorage interface {
	// SaveNode persists a single node record.
	SaveNode(ctx context.Context, node domain.Node) error

	// LoadNodes returns all stored records in ascending id order.
	LoadNodes(ctx context.Context) ([]domain.Node, error)
}

// EventHandler processes a single event delivered by the bus.
type EventHandler func(ctx context.Context, event domain.Event) error

// EventBus publishes and delivers tree events.
type EventBus interface {
	// Publish sends an event to all subscribers of a topic.
	Publish(ctx context.Context, topic string, event domain.Event) error

	// Subscribe registers a handler for a topic. Delivery stops when the
	// context is cancelled.
	Subscribe(ctx context.Context, topic string, handler EventHandler) error

	// Close releases bus resources.
	Close() error
}

// MetricsCollector records operational metrics for the tree store.
type MetricsCollector interface {
	// RecordNodeCreated counts a create attempt by outcome status.
	RecordNodeCreated(status string)

	// ObserveCreateDuration records how long a create took.
	ObserveCreateDuration(duration time.Duration)

	// SetForestSize sets the current number of nodes in the forest.
	SetForestSize(size int)

	// RecordTreeFetched counts a full-tree read.
	RecordTreeFetched()
}
