package domain

import "time"

// EventType identifies the kind of a tree event.
type EventType string

const (
	// EventTypeNodeCreated is published after a node is inserted.
	EventTypeNodeCreated EventType = "node.created"
)

// TopicTreeEvents is the event bus topic all tree events are published on.
const TopicTreeEvents = "tree.events"

// Event is a tree change notification carried over the event bus and the
// WebSocket stream.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Node      Node      `json:"node"`
	Timestamp time.Time `json:"timestamp"`
}
