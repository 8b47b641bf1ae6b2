package domain

import "errors"

var (
	// ErrInvalidLabel is returned when a node is created with an empty label.
	ErrInvalidLabel = errors.New("label must not be empty")

	// ErrParentNotFound is returned when parent_id references a node that
	// does not exist.
	ErrParentNotFound = errors.New("parent node not found")

	// ErrNodeNotFound is returned by lookups for an unknown node id.
	ErrNodeNotFound = errors.New("node not found")

	// ErrSelfParent is returned when a node would be linked to itself.
	ErrSelfParent = errors.New("node cannot be its own parent")

	// ErrDuplicateParent is returned when a node would acquire a second
	// parent. Parents are fixed at creation time, so the HTTP surface cannot
	// trigger this; it guards internal edge insertion.
	ErrDuplicateParent = errors.New("node already has a parent")
)
