/**
 * Copyright 2020 TryFix Engineering.
 * All rights reserved.
 * Authors:
 *    Gayan Yapa (gmbyapa@gmail.com)
 */

package store

import (
	"github.com/tryfix/ktopology/encoding"
)

// Supplier supplies a named state store instance to materialized
// topologies. The topology core stores and forwards Suppliers but never
// builds them itself; the execution engine builds one instance per task.
type Supplier interface {
	Name() string
	Build() (Store, error)
}

type defaultSupplier struct {
	name       string
	keyEncoder encoding.Builder
	valEncoder encoding.Builder
	options    []Options
}

func NewSupplier(name string, keyEncoder encoding.Builder, valEncoder encoding.Builder, options ...Options) Supplier {
	return &defaultSupplier{
		name:       name,
		keyEncoder: keyEncoder,
		valEncoder: valEncoder,
		options:    options,
	}
}

func (s *defaultSupplier) Name() string {
	return s.name
}

func (s *defaultSupplier) Build() (Store, error) {
	return NewStore(s.name, s.keyEncoder(), s.valEncoder(), s.options...)
}
