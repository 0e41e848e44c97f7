package topology

import (
	"sort"
)

// NodeGroups returns the partition of all node names into task groups,
// keyed by group id. The result is computed once and cached; nodes or
// store connections added afterwards are not reflected.
func (b *Builder) NodeGroups() map[int][]string {
	if b.nodeGroups == nil {
		b.nodeGroups = b.makeNodeGroups()
	}

	return copyGroups(b.nodeGroups)
}

// makeNodeGroups walks source nodes first, then the rest, both in
// lexicographic order. Identical specifications therefore always yield
// identical group id assignments regardless of add-call ordering, which
// downstream task assignment relies on across restarts.
func (b *Builder) makeNodeGroups() map[int][]string {
	nodeGroups := make(map[int][]string)
	rootToGroupID := make(map[string]int)
	nextGroupID := 0

	assign := func(nodeName string) {
		root := b.nodeGrouper.Root(nodeName)
		id, ok := rootToGroupID[root]
		if !ok {
			id = nextGroupID
			rootToGroupID[root] = id
			nextGroupID++
		}
		nodeGroups[id] = append(nodeGroups[id], nodeName)
	}

	sourceNames := make([]string, 0, len(b.nodeToTopics))
	for name := range b.nodeToTopics {
		sourceNames = append(sourceNames, name)
	}
	sort.Strings(sourceNames)

	for _, name := range sourceNames {
		assign(name)
	}

	allNames := make([]string, 0, len(b.nodeFactories))
	for name := range b.nodeFactories {
		allNames = append(allNames, name)
	}
	sort.Strings(allNames)

	for _, name := range allNames {
		if _, isSource := b.nodeToTopics[name]; !isSource {
			assign(name)
		}
	}

	for id := range nodeGroups {
		sort.Strings(nodeGroups[id])
	}

	return nodeGroups
}

// TopicGroups returns, per task group, the topics consumed by the source
// nodes inside that group.
func (b *Builder) TopicGroups() map[int][]string {
	if b.nodeGroups == nil {
		b.nodeGroups = b.makeNodeGroups()
	}

	topicGroups := make(map[int][]string, len(b.nodeGroups))
	for id, nodes := range b.nodeGroups {
		topics := make([]string, 0)
		for _, node := range nodes {
			topics = append(topics, b.nodeToTopics[node]...)
		}
		sort.Strings(topics)
		topicGroups[id] = topics
	}

	return topicGroups
}

// SourceTopics returns every topic claimed by a source, sorted, for
// subscription setup.
func (b *Builder) SourceTopics() []string {
	topics := make([]string, 0, len(b.sourceTopicNames))
	for topic := range b.sourceTopicNames {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	return topics
}

// CopartitionSources declares that the given sources' topics must be
// copartitioned. Groups are kept in declaration order and are not merged
// or validated here; partition compatibility is checked downstream.
func (b *Builder) CopartitionSources(sourceNodes []string) {
	b.copartitionSourceGroups = append(b.copartitionSourceGroups, append([]string(nil), sourceNodes...))
}

// CopartitionGroups translates each declared copartition set into the
// union of the topics its sources consume, in declaration order.
func (b *Builder) CopartitionGroups() [][]string {
	groups := make([][]string, 0, len(b.copartitionSourceGroups))
	for _, sources := range b.copartitionSourceGroups {
		topicSet := make(map[string]bool)
		for _, source := range sources {
			for _, topic := range b.nodeToTopics[source] {
				topicSet[topic] = true
			}
		}

		topics := make([]string, 0, len(topicSet))
		for topic := range topicSet {
			topics = append(topics, topic)
		}
		sort.Strings(topics)
		groups = append(groups, topics)
	}

	return groups
}

func copyGroups(groups map[int][]string) map[int][]string {
	cp := make(map[int][]string, len(groups))
	for id, nodes := range groups {
		cp[id] = append([]string(nil), nodes...)
	}

	return cp
}
