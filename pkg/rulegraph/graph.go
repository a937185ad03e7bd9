package rulegraph

import (
	"github.com/marcusbikes/storefront/pkg/catalog"
	"gonum.org/v1/gonum/graph/simple"
)

// OptionRef identifies one (component, option) pair of a product
type OptionRef struct {
	ComponentID catalog.ID `json:"componentId"`
	OptionID    catalog.ID `json:"optionId"`
}

// Graph is the directed graph of `requires` dependencies between option
// pairs of a single product. An edge source -> target means the target
// option is only selectable while the source option is selected.
type Graph struct {
	graph  *simple.DirectedGraph
	ids    map[OptionRef]int64
	refs   map[int64]OptionRef
	nextID int64
}

// New creates an empty requires graph
func New() *Graph {
	return &Graph{
		graph: simple.NewDirectedGraph(),
		ids:   make(map[OptionRef]int64),
		refs:  make(map[int64]OptionRef),
	}
}

// AddOption adds an option pair as a node, once
func (g *Graph) AddOption(ref OptionRef) {
	if _, exists := g.ids[ref]; exists {
		return
	}
	g.ids[ref] = g.nextID
	g.refs[g.nextID] = ref
	g.graph.AddNode(simple.Node(g.nextID))
	g.nextID++
}

// AddRequires adds an edge from the source option to the option it gates
func (g *Graph) AddRequires(source, target OptionRef) {
	g.AddOption(source)
	g.AddOption(target)

	sourceID := g.ids[source]
	targetID := g.ids[target]
	if sourceID == targetID {
		return // self-loops carry no information here
	}
	if !g.graph.HasEdgeFromTo(sourceID, targetID) {
		g.graph.SetEdge(g.graph.NewEdge(g.graph.Node(sourceID), g.graph.Node(targetID)))
	}
}

// Ref returns the option pair behind a node id
func (g *Graph) Ref(id int64) (OptionRef, bool) {
	ref, ok := g.refs[id]
	return ref, ok
}

// Build constructs the requires graph for a product. Dependencies whose
// source or target does not resolve to a real option are skipped, matching
// how the resolver treats them as inactive.
func Build(product *catalog.Product) *Graph {
	g := New()

	for _, c := range product.Components {
		for _, o := range c.Options {
			g.AddOption(OptionRef{ComponentID: c.ID, OptionID: o.ID})
		}
	}

	for _, dep := range product.Dependencies {
		if dep.Type != catalog.DependencyRequires {
			continue
		}
		if _, ok := product.FindOption(dep.SourceComponentID, dep.SourceOptionID); !ok {
			continue
		}
		if _, ok := product.FindOption(dep.TargetComponentID, dep.TargetOptionID); !ok {
			continue
		}
		g.AddRequires(
			OptionRef{ComponentID: dep.SourceComponentID, OptionID: dep.SourceOptionID},
			OptionRef{ComponentID: dep.TargetComponentID, OptionID: dep.TargetOptionID},
		)
	}

	return g
}

// Cycles returns every set of option pairs whose requires dependencies form
// a cycle. Options in such a set can never all become selectable from an
// empty selection, so a catalog containing one is unsatisfiable.
func (g *Graph) Cycles() [][]OptionRef {
	sccs := newTarjan(g.graph).findSCCs()

	var out [][]OptionRef
	for _, scc := range sccs {
		cycle := make([]OptionRef, 0, len(scc))
		for _, id := range scc {
			if ref, ok := g.refs[id]; ok {
				cycle = append(cycle, ref)
			}
		}
		out = append(out, cycle)
	}
	return out
}
