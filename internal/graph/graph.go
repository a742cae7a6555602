// Package graph provides the definition dependency graph used to order
// emission and to find reference cycles.
package graph

import "slices"

// Symbol identifies a type definition within a module.
type Symbol struct {
	Module string
	Name   string
}

func (s Symbol) String() string {
	if s.Module == "" {
		return s.Name
	}
	return s.Module + "." + s.Name
}

// Graph is a dependency graph of symbols with forward edges. Nodes keep
// their insertion order, which makes every traversal deterministic.
type Graph struct {
	order []Symbol
	nodes map[Symbol]struct{}
	edges map[Symbol][]Symbol
}

// New returns a graph with no nodes or edges, sized for about n nodes.
func New(n int) *Graph {
	return &Graph{
		order: make([]Symbol, 0, n),
		nodes: make(map[Symbol]struct{}, n),
		edges: make(map[Symbol][]Symbol, n),
	}
}

// AddNode registers a symbol. Duplicate calls are no-ops.
func (g *Graph) AddNode(sym Symbol) {
	if _, ok := g.nodes[sym]; ok {
		return
	}
	g.nodes[sym] = struct{}{}
	g.order = append(g.order, sym)
}

// AddEdge records that "from" depends on "to", meaning "to" must be
// declared before "from". Missing nodes are created implicitly.
// Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to Symbol) {
	g.AddNode(from)
	g.AddNode(to)

	if slices.Contains(g.edges[from], to) {
		return
	}
	g.edges[from] = append(g.edges[from], to)
}
