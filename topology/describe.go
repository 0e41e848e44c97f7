package topology

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// NodeInfo describes one registered node specification. Only the fields
// relevant to the node's type are populated.
type NodeInfo struct {
	Name        string
	Type        Type
	Topics      []string
	Topic       string
	Parents     []string
	StateStores []string
}

// Describe returns the registered node specifications in insertion
// (topological) order.
func (b *Builder) Describe() []NodeInfo {
	infos := make([]NodeInfo, 0, len(b.nodeOrder))
	for _, name := range b.nodeOrder {
		switch f := b.nodeFactories[name].(type) {
		case *sourceNodeFactory:
			infos = append(infos, NodeInfo{
				Name:   name,
				Type:   TypeSource,
				Topics: append([]string(nil), f.topics...),
			})
		case *processorNodeFactory:
			infos = append(infos, NodeInfo{
				Name:        name,
				Type:        TypeProcessor,
				Parents:     append([]string(nil), f.parents...),
				StateStores: append([]string(nil), f.stateStores...),
			})
		case *sinkNodeFactory:
			infos = append(infos, NodeInfo{
				Name:    name,
				Type:    TypeSink,
				Topic:   f.topic,
				Parents: append([]string(nil), f.parents...),
			})
		}
	}

	return infos
}

// DescribeGroups renders the task groups and their topics as a plain
// text table.
func (b *Builder) DescribeGroups() string {
	nodeGroups := b.NodeGroups()
	topicGroups := b.TopicGroups()

	ids := make([]int, 0, len(nodeGroups))
	for id := range nodeGroups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	buf := new(bytes.Buffer)
	table := tablewriter.NewWriter(buf)
	table.SetHeader([]string{`group`, `nodes`, `topics`})

	for _, id := range ids {
		table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT})
		table.Append([]string{
			fmt.Sprint(id),
			strings.Join(nodeGroups[id], `, `),
			strings.Join(topicGroups[id], `, `),
		})
	}
	table.Render()

	return buf.String()
}
