/**
 * Copyright 2020 TryFix Engineering.
 * All rights reserved.
 * Authors:
 *    Gayan Yapa (gmbyapa@gmail.com)
 */

package encoding

// Builder builds an Encoder instance. Topology sources and sinks hold
// Builders rather than Encoder instances so that every materialized
// topology gets its own encoder objects.
type Builder func() Encoder

// Encoder encodes and decodes message keys and values. A nil Builder on a
// source or sink means the engine default applies.
type Encoder interface {
	Encode(data interface{}) ([]byte, error)
	Decode(data []byte) (interface{}, error)
}
