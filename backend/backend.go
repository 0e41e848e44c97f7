/**
 * Copyright 2020 TryFix Engineering.
 * All rights reserved.
 * Authors:
 *    Gayan Yapa (gmbyapa@gmail.com)
 */

package backend

import (
	"time"
)

// Builder builds a named Backend instance for a state store.
type Builder func(name string) (Backend, error)

// Backend is the byte-level storage under a state store.
type Backend interface {
	Name() string
	Set(key []byte, value []byte, expiry time.Duration) error
	Get(key []byte) ([]byte, error)
	Iterator() Iterator
	Delete(key []byte) error
	SetExpiry(expiry time.Duration)
	String() string
	Persistent() bool
	Close() error
	Destroy() error
}
