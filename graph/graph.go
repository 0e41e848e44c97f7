package graph

import (
	"fmt"
	"strings"

	"github.com/awalterschulze/gographviz"
	"github.com/tryfix/ktopology/topology"
)

// Graph renders a topology Builder as a graphviz digraph, one cluster
// per task group.
type Graph struct {
	parent   string
	vizGraph *gographviz.Graph
}

func NewGraph() *Graph {
	parent := `root`
	g := gographviz.NewGraph()
	if err := g.SetName(parent); err != nil {
		panic(err)
	}
	if err := g.SetDir(true); err != nil {
		panic(err)
	}

	if err := g.AddAttr(parent, `splines`, `ortho`); err != nil {
		panic(err)
	}

	return &Graph{
		parent:   parent,
		vizGraph: g,
	}
}

func (g *Graph) source(parent string, name string, attrs map[string]string) {
	attrs[`color`] = `black`
	attrs[`fillcolor`] = `deepskyblue1`
	attrs[`style`] = `filled`
	attrs[`shape`] = `oval`
	if err := g.vizGraph.AddNode(parent, name, attrs); err != nil {
		panic(err)
	}
}

func (g *Graph) processor(parent string, name string, attrs map[string]string) {
	attrs[`fontcolor`] = `grey100`
	attrs[`fillcolor`] = `slateblue4`
	attrs[`style`] = `filled`
	attrs[`shape`] = `square`
	if err := g.vizGraph.AddNode(parent, name, attrs); err != nil {
		panic(err)
	}
}

func (g *Graph) sink(parent string, name string, attrs map[string]string) {
	attrs[`color`] = `black`
	attrs[`fillcolor`] = `orange`
	attrs[`style`] = `filled`
	attrs[`shape`] = `oval`
	if err := g.vizGraph.AddNode(parent, name, attrs); err != nil {
		panic(err)
	}
}

func (g *Graph) store(parent string, name string, attrs map[string]string) {
	attrs[`shape`] = `cylinder`
	attrs[`fillcolor`] = `grey95`
	attrs[`style`] = `filled`
	if err := g.vizGraph.AddNode(parent, name, attrs); err != nil {
		panic(err)
	}
}

func (g *Graph) edge(parent string, child string, attrs map[string]string) {
	if err := g.vizGraph.AddEdge(parent, child, true, attrs); err != nil {
		panic(err)
	}
}

// RenderTopology draws every registered node into the cluster of its
// task group, with parent to child edges and store attachments.
func (g *Graph) RenderTopology(b *topology.Builder) {
	groupOf := make(map[string]int)
	for id, nodes := range b.NodeGroups() {
		for _, name := range nodes {
			groupOf[name] = id
		}
	}

	clusters := make(map[int]string)
	cluster := func(groupID int) string {
		name, ok := clusters[groupID]
		if !ok {
			name = fmt.Sprintf(`cluster_%d`, groupID)
			if err := g.vizGraph.AddSubGraph(g.parent, name, map[string]string{
				`label`: fmt.Sprintf(`"task group %d"`, groupID),
				`style`: `dashed`,
			}); err != nil {
				panic(err)
			}
			clusters[groupID] = name
		}
		return name
	}

	storesDrawn := make(map[string]bool)

	for _, info := range b.Describe() {
		parent := cluster(groupOf[info.Name])
		nodeName := sanitize(info.Name)

		switch info.Type {
		case topology.TypeSource:
			g.source(parent, nodeName, map[string]string{
				`label`: fmt.Sprintf(`"%s\ntopics: %s"`, info.Name, strings.Join(info.Topics, `, `)),
			})

		case topology.TypeProcessor:
			g.processor(parent, nodeName, map[string]string{
				`label`: fmt.Sprintf(`"%s"`, info.Name),
			})
			for _, storeName := range info.StateStores {
				sName := sanitize(storeName)
				if !storesDrawn[sName] {
					storesDrawn[sName] = true
					g.store(parent, sName, map[string]string{
						`label`: fmt.Sprintf(`"%s"`, storeName),
					})
				}
				g.edge(nodeName, sName, map[string]string{`style`: `dashed`})
			}

		case topology.TypeSink:
			g.sink(parent, nodeName, map[string]string{
				`label`: fmt.Sprintf(`"%s\ntopic: %s"`, info.Name, info.Topic),
			})
		}

		for _, p := range info.Parents {
			g.edge(sanitize(p), nodeName, nil)
		}
	}
}

// Build returns the rendered graph in dot format.
func (g *Graph) Build() string {
	return g.vizGraph.String()
}

func sanitize(name string) string {
	name = strings.ReplaceAll(name, `-`, `_`)
	return strings.ReplaceAll(name, `.`, `_`)
}
