package routing

import "errors"

var (
	// ErrUnknownNode is a caller contract violation: a supplied identifier
	// does not exist in the graph snapshot.
	ErrUnknownNode = errors.New("routing: unknown node")

	// ErrNoPath is the representable "no result" for two nodes in disjoint
	// components. Callers branch on it with errors.Is and must not treat it
	// as a fault.
	ErrNoPath = errors.New("routing: no path")
)
