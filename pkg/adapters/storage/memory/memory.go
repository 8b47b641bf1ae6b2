package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aescanero/treed/pkg/domain"
)

// InMemoryNodeStorage implements NodeStorage using an in-memory map.
// Records do not survive the process; it is the default backend and the
// one tests use.
type InMemoryNodeStorage struct {
	nodes map[int]domain.Node
	mu    sync.RWMutex
}

// NewInMemoryNodeStorage creates a new in-memory node storage
func NewInMemoryNodeStorage() *InMemoryNodeStorage {
	return &InMemoryNodeStorage{
		nodes: make(map[int]domain.Node),
	}
}

// SaveNode persists a node record (ports.NodeStorage interface)
func (s *InMemoryNodeStorage) SaveNode(ctx context.Context, node domain.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes[node.ID] = node
	return nil
}

// LoadNodes returns all records in ascending id order (ports.NodeStorage interface)
func (s *InMemoryNodeStorage) LoadNodes(ctx context.Context) ([]domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]domain.Node, 0, len(s.nodes))
	for _, node := range s.nodes {
		nodes = append(nodes, node)
	}

	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes, nil
}

// Len returns the number of stored records
func (s *InMemoryNodeStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}
