// Package forest holds the tree store core: the forest of labeled nodes
// with monotonic id allocation and parent links, and the Manager that
// coordinates storage, events and metrics around it.
package forest
