// Package domain defines the core types of the tree store: node records,
// the nested tree representation, events and the error values shared by
// the application core and the adapters.
package domain
