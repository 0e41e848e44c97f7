package store

import (
	"github.com/tryfix/ktopology/backend"
	"github.com/tryfix/ktopology/encoding"
)

type Iterator interface {
	SeekToFirst()
	Next()
	Close()
	Key() (interface{}, error)
	Value() (interface{}, error)
	Valid() bool
}

type iterator struct {
	iterator   backend.Iterator
	keyEncoder encoding.Encoder
	valEncoder encoding.Encoder
}

func (i *iterator) SeekToFirst() {
	i.iterator.SeekToFirst()
}

func (i *iterator) Next() {
	i.iterator.Next()
}

func (i *iterator) Close() {
	i.iterator.Close()
}

func (i *iterator) Key() (interface{}, error) {
	return i.keyEncoder.Decode(i.iterator.Key())
}

func (i *iterator) Value() (interface{}, error) {
	return i.valEncoder.Decode(i.iterator.Value())
}

func (i *iterator) Valid() bool {
	return i.iterator.Valid()
}
