package forest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aescanero/treed/pkg/domain"
	"github.com/aescanero/treed/pkg/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager coordinates the forest with persistence, events and metrics.
type Manager struct {
	forest  *Forest
	storage ports.NodeStorage
	events  ports.EventBus
	metrics ports.MetricsCollector
	logger  *zap.Logger
}

// NewManager creates a manager over an empty forest.
func NewManager(
	storage ports.NodeStorage,
	events ports.EventBus,
	metrics ports.MetricsCollector,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		forest:  NewForest(),
		storage: storage,
		events:  events,
		metrics: metrics,
		logger:  logger,
	}
}

// Restore rebuilds the forest from persisted node records. Records arrive
// in ascending id order, so parents are always replayed before children; a
// record that still fails to link is logged and skipped rather than
// aborting boot.
func (m *Manager) Restore(ctx context.Context) error {
	nodes, err := m.storage.LoadNodes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load nodes: %w", err)
	}

	restored := 0
	for _, node := range nodes {
		if err := m.forest.Restore(node); err != nil {
			m.logger.Warn("skipping unreplayable node record",
				zap.Int("node_id", node.ID),
				zap.Error(err))
			continue
		}
		restored++
	}

	m.metrics.SetForestSize(m.forest.Len())

	if restored > 0 {
		m.logger.Info("forest restored from storage",
			zap.Int("nodes", restored))
	}
	return nil
}

// CreateNode validates and inserts a new node, persists it and publishes a
// node.created event.
func (m *Manager) CreateNode(ctx context.Context, label string, parentID *int) (domain.Node, error) {
	start := time.Now()

	node, err := m.forest.AddNode(label, parentID)
	if err != nil {
		m.metrics.RecordNodeCreated(statusForError(err))
		m.logger.Warn("node rejected",
			zap.String("label", label),
			zap.Error(err))
		return domain.Node{}, err
	}

	if err := m.storage.SaveNode(ctx, node); err != nil {
		// The insert must not outlive a failed persist: evict the node so
		// reads never see what the client was told does not exist. The id
		// stays burned.
		m.forest.discard(node.ID)
		m.metrics.RecordNodeCreated("storage_error")
		m.logger.Error("failed to persist node",
			zap.Int("node_id", node.ID),
			zap.Error(err))
		return domain.Node{}, fmt.Errorf("failed to persist node: %w", err)
	}

	m.publishNodeCreated(ctx, node)

	m.metrics.RecordNodeCreated("created")
	m.metrics.SetForestSize(m.forest.Len())
	m.metrics.ObserveCreateDuration(time.Since(start))

	m.logger.Info("node created",
		zap.Int("node_id", node.ID),
		zap.String("label", node.Label))

	return node, nil
}

// Tree returns the nested snapshot of the whole forest.
func (m *Manager) Tree(ctx context.Context) []*domain.TreeNode {
	m.metrics.RecordTreeFetched()
	return m.forest.Snapshot()
}

// Node returns the flat record for a node id.
func (m *Manager) Node(ctx context.Context, id int) (domain.Node, error) {
	node, ok := m.forest.Node(id)
	if !ok {
		return domain.Node{}, fmt.Errorf("%w: %d", domain.ErrNodeNotFound, id)
	}
	return node, nil
}

// Len returns the current node count.
func (m *Manager) Len() int {
	return m.forest.Len()
}

// publishNodeCreated emits the event; delivery is best effort and failures
// only get logged.
func (m *Manager) publishNodeCreated(ctx context.Context, node domain.Node) {
	event := domain.Event{
		ID:        uuid.New().String(),
		Type:      domain.EventTypeNodeCreated,
		Node:      node,
		Timestamp: time.Now(),
	}

	if err := m.events.Publish(ctx, domain.TopicTreeEvents, event); err != nil {
		m.logger.Error("failed to publish event",
			zap.String("event_id", event.ID),
			zap.Int("node_id", node.ID),
			zap.Error(err))
	}
}

// statusForError maps create failures to metric status labels.
func statusForError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidLabel):
		return "invalid_label"
	case errors.Is(err, domain.ErrParentNotFound):
		return "parent_not_found"
	default:
		return "error"
	}
}
