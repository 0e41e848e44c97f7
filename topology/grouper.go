package topology

import (
	"fmt"
)

// Grouper tracks equivalence classes over node names. Nodes sharing a
// root must be scheduled into the same task.
type Grouper interface {
	Add(id string)
	Unite(id string, ids ...string)
	Root(id string) string
}

// quickUnion is a hash-indexed union-find over node names. Roots are
// looked up with path halving; exact tie breaking between roots is not
// part of the contract.
type quickUnion struct {
	ids map[string]string
}

func newQuickUnion() *quickUnion {
	return &quickUnion{ids: make(map[string]string)}
}

func (q *quickUnion) Add(id string) {
	if _, ok := q.ids[id]; !ok {
		q.ids[id] = id
	}
}

func (q *quickUnion) Root(id string) string {
	current := id

	parent, ok := q.ids[current]
	if !ok {
		panic(fmt.Sprintf(`id [%s] not found`, id))
	}

	for parent != current {
		// path halving
		grandparent := q.ids[parent]
		q.ids[current] = grandparent

		current = grandparent
		parent = q.ids[current]
	}

	return current
}

func (q *quickUnion) Unite(id string, ids ...string) {
	root := q.Root(id)
	for _, other := range ids {
		otherRoot := q.Root(other)
		if otherRoot != root {
			q.ids[otherRoot] = root
		}
	}
}
