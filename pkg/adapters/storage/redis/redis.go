package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/aescanero/treed/pkg/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// nodesKey is the hash holding all node records, field = node id.
const nodesKey = "treed:nodes"

// NodeStorage implements NodeStorage using a Redis hash
type NodeStorage struct {
	client *redis.Client
	logger *zap.Logger
}

// NewNodeStorage creates a new Redis node storage
func NewNodeStorage(client *redis.Client, logger *zap.Logger) *NodeStorage {
	return &NodeStorage{
		client: client,
		logger: logger,
	}
}

// SaveNode persists a node record (ports.NodeStorage interface)
func (s *NodeStorage) SaveNode(ctx context.Context, node domain.Node) error {
	// Serialize record
	data, err := json.Marshal(node)
	if err != nil {
		return fmt.Errorf("failed to marshal node: %w", err)
	}

	if err := s.client.HSet(ctx, nodesKey, strconv.Itoa(node.ID), data).Err(); err != nil {
		return fmt.Errorf("failed to save node: %w", err)
	}

	s.logger.Debug("node saved",
		zap.Int("node_id", node.ID),
		zap.String("label", node.Label))

	return nil
}

// LoadNodes returns all records in ascending id order (ports.NodeStorage interface)
func (s *NodeStorage) LoadNodes(ctx context.Context) ([]domain.Node, error) {
	fields, err := s.client.HGetAll(ctx, nodesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load nodes: %w", err)
	}

	nodes := make([]domain.Node, 0, len(fields))
	for field, data := range fields {
		var node domain.Node
		if err := json.Unmarshal([]byte(data), &node); err != nil {
			s.logger.Warn("skipping undecodable node record",
				zap.String("field", field),
				zap.Error(err))
			continue
		}
		nodes = append(nodes, node)
	}

	// Hash fields come back unordered; replay needs parents first.
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	return nodes, nil
}
