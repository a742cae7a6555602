package graph

import "slices"

// FindCycles returns every strongly connected component with more than one
// node, and every node with a self-loop, using Tarjan's algorithm. Roots
// are visited in insertion order and members of a component are listed in
// visit order.
func (g *Graph) FindCycles() [][]Symbol {
	var (
		index    int
		stack    []Symbol
		cycles   [][]Symbol
		onStack  = make(map[Symbol]bool)
		indices  = make(map[Symbol]int)
		lowlinks = make(map[Symbol]int)
	)

	var strongConnect func(sym Symbol)
	strongConnect = func(sym Symbol) {
		indices[sym] = index
		lowlinks[sym] = index
		index++
		stack = append(stack, sym)
		onStack[sym] = true

		for _, dep := range g.edges[sym] {
			if _, visited := indices[dep]; !visited {
				strongConnect(dep)
				lowlinks[sym] = min(lowlinks[sym], lowlinks[dep])
			} else if onStack[dep] {
				lowlinks[sym] = min(lowlinks[sym], indices[dep])
			}
		}

		if lowlinks[sym] != indices[sym] {
			return
		}
		var scc []Symbol
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			scc = append(scc, w)
			if w == sym {
				break
			}
		}
		switch {
		case len(scc) > 1:
			slices.Reverse(scc)
			cycles = append(cycles, scc)
		case slices.Contains(g.edges[sym], sym):
			cycles = append(cycles, scc)
		}
	}

	for _, sym := range g.order {
		if _, visited := indices[sym]; !visited {
			strongConnect(sym)
		}
	}
	return cycles
}
