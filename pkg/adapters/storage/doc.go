// Package storage contains node persistence adapters.
//
// Two implementations are provided: an in-memory store used by default and
// in tests, and a Redis-backed store that survives process restarts.
package storage
