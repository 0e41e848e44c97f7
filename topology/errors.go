package topology

import (
	"errors"
)

// Specification defects surfaced by the Builder. All of these are
// configuration-time errors: they signal a broken topology definition and
// are never transient, so the caller should abort assembly instead of
// retrying.
var (
	ErrNodeAlreadyExists       = errors.New(`node already exists`)
	ErrTopicAlreadyRegistered  = errors.New(`topic already registered by another source`)
	ErrSelfParent              = errors.New(`node cannot be a parent of itself`)
	ErrUnknownParent           = errors.New(`parent node is not added yet`)
	ErrStateStoreAlreadyExists = errors.New(`state store already exists`)
	ErrUnknownStateStore       = errors.New(`state store is not added yet`)
	ErrUnknownProcessor        = errors.New(`processor is not added yet`)
	ErrNotAProcessor           = errors.New(`state stores can only be connected to processor nodes`)

	// ErrNodeConstruction wraps a failure while materializing nodes in
	// Build. Given a validated builder this is unreachable; seeing it
	// means a registry invariant is broken.
	ErrNodeConstruction = errors.New(`node construction failed`)
)
