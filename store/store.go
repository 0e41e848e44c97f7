/**
 * Copyright 2020 TryFix Engineering.
 * All rights reserved.
 * Authors:
 *    Gayan Yapa (gmbyapa@gmail.com)
 */

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tryfix/errors"
	"github.com/tryfix/ktopology/backend"
	"github.com/tryfix/ktopology/encoding"
	"github.com/tryfix/log"
)

// Store is a named keyed-storage unit used by processor nodes to keep
// computation state across records.
type Store interface {
	Name() string
	Backend() backend.Backend
	KeyEncoder() encoding.Encoder
	ValEncoder() encoding.Encoder
	Set(ctx context.Context, key interface{}, value interface{}, expiry time.Duration) error
	Get(ctx context.Context, key interface{}) (value interface{}, err error)
	GetAll(ctx context.Context) (Iterator, error)
	Delete(ctx context.Context, key interface{}) error
	String() string
}

type store struct {
	name       string
	backend    backend.Backend
	keyEncoder encoding.Encoder
	valEncoder encoding.Encoder
	logger     log.Logger
}

func NewStore(name string, keyEncoder encoding.Encoder, valEncoder encoding.Encoder, options ...Options) (Store, error) {
	opts := new(storeOptions)
	opts.apply(options...)

	if opts.backend == nil {
		bk, err := opts.backendBuilder(name)
		if err != nil {
			return nil, errors.WithPrevious(err, fmt.Sprintf(`store [%s] backend builder error`, name))
		}
		opts.backend = bk
	}

	opts.backend.SetExpiry(opts.expiry)

	opts.logger.Info(fmt.Sprintf(`store [%s] inited`, name))

	return &store{
		name:       name,
		backend:    opts.backend,
		keyEncoder: keyEncoder,
		valEncoder: valEncoder,
		logger:     opts.logger,
	}, nil
}

func (s *store) Name() string {
	return s.name
}

func (s *store) String() string {
	return fmt.Sprintf(`store [%s] backend [%s]`, s.name, s.backend.Name())
}

func (s *store) Backend() backend.Backend {
	return s.backend
}

func (s *store) KeyEncoder() encoding.Encoder {
	return s.keyEncoder
}

func (s *store) ValEncoder() encoding.Encoder {
	return s.valEncoder
}

func (s *store) Set(ctx context.Context, key interface{}, value interface{}, expiry time.Duration) error {
	k, err := s.keyEncoder.Encode(key)
	if err != nil {
		return errors.WithPrevious(err, fmt.Sprintf(`store [%s] key encode error`, s.name))
	}

	// tombstone
	if value == nil {
		return s.backend.Delete(k)
	}

	v, err := s.valEncoder.Encode(value)
	if err != nil {
		return errors.WithPrevious(err, fmt.Sprintf(`store [%s] value encode error`, s.name))
	}

	return s.backend.Set(k, v, expiry)
}

func (s *store) Get(ctx context.Context, key interface{}) (interface{}, error) {
	k, err := s.keyEncoder.Encode(key)
	if err != nil {
		return nil, errors.WithPrevious(err, fmt.Sprintf(`store [%s] key encode error`, s.name))
	}

	byt, err := s.backend.Get(k)
	if err != nil {
		return nil, errors.WithPrevious(err, fmt.Sprintf(`store [%s] backend read error`, s.name))
	}

	if byt == nil {
		return nil, nil
	}

	v, err := s.valEncoder.Decode(byt)
	if err != nil {
		return nil, errors.WithPrevious(err, fmt.Sprintf(`store [%s] value decode error`, s.name))
	}

	return v, nil
}

func (s *store) GetAll(ctx context.Context) (Iterator, error) {
	return &iterator{
		iterator:   s.backend.Iterator(),
		keyEncoder: s.keyEncoder,
		valEncoder: s.valEncoder,
	}, nil
}

func (s *store) Delete(ctx context.Context, key interface{}) error {
	k, err := s.keyEncoder.Encode(key)
	if err != nil {
		return errors.WithPrevious(err, fmt.Sprintf(`store [%s] key encode error`, s.name))
	}

	return s.backend.Delete(k)
}
