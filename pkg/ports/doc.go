// Package ports declares the interfaces the application core depends on.
// Adapters under pkg/adapters provide the concrete implementations.
package ports
