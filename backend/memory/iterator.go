package memory

type iterator struct {
	records []record
	current int
	valid   bool
}

func (i *iterator) SeekToFirst() {
	i.current = 0
	i.valid = len(i.records) > 0
}

func (i *iterator) Seek(key []byte) {
	for idx, r := range i.records {
		if string(r.key) == string(key) {
			i.current = idx
			return
		}
	}
}

func (i *iterator) Next() {
	if i.current >= len(i.records)-1 {
		i.valid = false
		return
	}
	i.current++
}

func (i *iterator) Close() {
	i.records = nil
}

func (i *iterator) Key() []byte {
	return i.records[i.current].key
}

func (i *iterator) Value() []byte {
	return i.records[i.current].value
}

func (i *iterator) Valid() bool {
	return i.valid
}

func (i *iterator) Error() error {
	return nil
}
