// Package scene provides a small arena-backed scene graph. Nodes carry a
// payload and a draw-order depth; parents own their child lists. A node
// is addressed by handle, never by pointer, so slots can be recycled.
package scene

import "sort"

// ID is a handle into the graph's node arena. The zero ID is the root.
type ID int

type node struct {
	parent   ID
	children []ID
	depth    float64
	payload  any
	live     bool
}

// Graph owns the node arena. The root always exists.
type Graph struct {
	nodes []node
	free  []ID
}

// NewGraph creates a graph containing only the root node.
func NewGraph() *Graph {
	return &Graph{nodes: []node{{parent: -1, live: true}}}
}

// Root returns the root handle.
func (g *Graph) Root() ID {
	return 0
}

// Add inserts a child under parent with the given depth and payload,
// reusing a freed slot when one exists. A dead or out-of-range parent
// falls back to the root.
func (g *Graph) Add(parent ID, depth float64, payload any) ID {
	if !g.valid(parent) {
		parent = 0
	}
	var id ID
	if n := len(g.free); n > 0 {
		id = g.free[n-1]
		g.free = g.free[:n-1]
		g.nodes[id] = node{parent: parent, depth: depth, payload: payload, live: true}
	} else {
		id = ID(len(g.nodes))
		g.nodes = append(g.nodes, node{parent: parent, depth: depth, payload: payload, live: true})
	}
	p := &g.nodes[parent]
	p.children = append(p.children, id)
	return id
}

// Remove deletes a node and its whole subtree. Removing the root clears
// the graph instead.
func (g *Graph) Remove(id ID) {
	if id == 0 {
		g.Clear()
		return
	}
	if !g.valid(id) {
		return
	}
	p := &g.nodes[g.nodes[id].parent]
	for i, ch := range p.children {
		if ch == id {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	g.removeSubtree(id)
}

func (g *Graph) removeSubtree(id ID) {
	for _, ch := range g.nodes[id].children {
		g.removeSubtree(ch)
	}
	g.nodes[id] = node{}
	g.free = append(g.free, id)
}

// Clear removes every node except the root. Safe when already empty.
func (g *Graph) Clear() {
	g.nodes = g.nodes[:1]
	g.nodes[0].children = g.nodes[0].children[:0]
	g.free = g.free[:0]
}

// Payload returns the payload stored on id, or nil for dead handles.
func (g *Graph) Payload(id ID) any {
	if !g.valid(id) {
		return nil
	}
	return g.nodes[id].payload
}

// SetDepth updates a node's draw-order key.
func (g *Graph) SetDepth(id ID, depth float64) {
	if g.valid(id) {
		g.nodes[id].depth = depth
	}
}

// Depth returns a node's draw-order key.
func (g *Graph) Depth(id ID) float64 {
	if !g.valid(id) {
		return 0
	}
	return g.nodes[id].depth
}

// Children returns id's children ordered by ascending depth, resorted on
// every call so depth edits take effect immediately. The slice remains
// owned by the graph.
func (g *Graph) Children(id ID) []ID {
	if !g.valid(id) {
		return nil
	}
	ch := g.nodes[id].children
	sort.SliceStable(ch, func(i, j int) bool {
		return g.nodes[ch[i]].depth < g.nodes[ch[j]].depth
	})
	return ch
}

// Len returns the number of live nodes excluding the root.
func (g *Graph) Len() int {
	return len(g.nodes) - 1 - len(g.free)
}

func (g *Graph) valid(id ID) bool {
	return id >= 0 && int(id) < len(g.nodes) && g.nodes[id].live
}
