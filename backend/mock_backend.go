package backend

import (
	"sync"
	"time"
)

type MockBackend struct {
	name   string
	data   map[string][]byte
	mu     *sync.Mutex
	expiry time.Duration
}

func NewMockBackend(name string, expiry time.Duration) Backend {
	b := &MockBackend{
		name: name,
		data: make(map[string][]byte),
		mu:   new(sync.Mutex),
	}

	if expiry > 0 {
		b.expiry = expiry
	}

	return b
}

func (b *MockBackend) Name() string {
	return b.name
}

func (b *MockBackend) String() string {
	return b.name
}

func (b *MockBackend) Persistent() bool {
	return false
}

func (b *MockBackend) Set(key []byte, value []byte, expiry time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if expiry == 0 {
		expiry = b.expiry
	}

	if expiry > 0 {
		go func() {
			time.Sleep(expiry)
			if err := b.Delete(key); err != nil {
				panic(err)
			}
		}()
	}

	b.data[string(key)] = value
	return nil
}

func (b *MockBackend) Get(key []byte) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.data[string(key)]
	if !ok {
		return nil, nil
	}

	return v, nil
}

func (b *MockBackend) Iterator() Iterator {
	b.mu.Lock()
	defer b.mu.Unlock()

	records := make([]mockRecord, 0, len(b.data))
	for k, v := range b.data {
		records = append(records, mockRecord{key: []byte(k), value: v})
	}

	return &mockIterator{records: records, valid: len(records) > 0}
}

func (b *MockBackend) Delete(key []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.data, string(key))
	return nil
}

func (b *MockBackend) SetExpiry(expiry time.Duration) {
	b.expiry = expiry
}

func (b *MockBackend) Close() error {
	b.data = nil
	return nil
}

func (b *MockBackend) Destroy() error {
	return nil
}

type mockRecord struct {
	key   []byte
	value []byte
}

type mockIterator struct {
	records []mockRecord
	current int
	valid   bool
}

func (i *mockIterator) SeekToFirst() {
	i.current = 0
	i.valid = len(i.records) > 0
}

func (i *mockIterator) Seek(key []byte) {
	for idx, r := range i.records {
		if string(r.key) == string(key) {
			i.current = idx
			return
		}
	}
}

func (i *mockIterator) Next() {
	if i.current >= len(i.records)-1 {
		i.valid = false
		return
	}
	i.current++
}

func (i *mockIterator) Close() {
	i.records = nil
}

func (i *mockIterator) Key() []byte {
	return i.records[i.current].key
}

func (i *mockIterator) Value() []byte {
	return i.records[i.current].value
}

func (i *mockIterator) Valid() bool {
	return i.valid
}

func (i *mockIterator) Error() error {
	return nil
}
