// Package events contains event bus adapters used to fan out tree change
// notifications: an in-memory bus for single-process use and tests, and a
// Redis Streams bus for multi-process deployments.
package events
