package fastgraph

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/toolpath"
)

var (
	// ErrStaleHandle is returned when a handle refers to a destroyed node.
	ErrStaleHandle = errors.New("stale node handle")

	// ErrNodeConnected is returned when destroying a node that still has
	// forward or reverse edges.
	ErrNodeConnected = errors.New("node still connected")
)

// Handle identifies a node within its graph. The zero Handle never refers
// to a live node.
type Handle struct {
	index int
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string { return fmt.Sprintf("#%d.%d", h.index, h.gen) }

// Link is one end of a directed edge as seen from a node.
type Link struct {
	Node Handle
	Cost Cost
}

// Node is a graph vertex: a toolpath point plus its adjacency.
type Node struct {
	Position r2.Point
	Label    toolpath.Label
	// Entry marks nodes where travel may legally start or stop.
	Entry bool

	forward []Link
	reverse []Link
}

// Forward returns a snapshot of the outgoing edges.
func (n *Node) Forward() []Link { return slices.Clone(n.forward) }

// Reverse returns a snapshot of the incoming edges.
func (n *Node) Reverse() []Link { return slices.Clone(n.reverse) }

// ForwardEmpty reports whether n has no outgoing edges.
func (n *Node) ForwardEmpty() bool { return len(n.forward) == 0 }

// ReverseEmpty reports whether n has no incoming edges.
func (n *Node) ReverseEmpty() bool { return len(n.reverse) == 0 }

// Isolated reports whether n has no edges in either direction.
func (n *Node) Isolated() bool { return n.ForwardEmpty() && n.ReverseEmpty() }

type slot struct {
	node Node
	gen  uint32
	live bool
}

// Graph is an arena of nodes with paired adjacency. The zero value is an
// empty graph ready to use.
type Graph struct {
	slots []slot
	free  []int
	count int
	edges int
}

// New returns an empty graph.
func New() *Graph { return &Graph{} }

// CreateNode adds a node and returns its handle.
func (g *Graph) CreateNode(pos r2.Point, label toolpath.Label, entry bool) Handle {
	n := Node{Position: pos, Label: label, Entry: entry}
	g.count++
	if k := len(g.free); k > 0 {
		i := g.free[k-1]
		g.free = g.free[:k-1]
		s := &g.slots[i]
		s.node, s.live = n, true
		return Handle{index: i, gen: s.gen}
	}
	g.slots = append(g.slots, slot{node: n, gen: 1, live: true})
	return Handle{index: len(g.slots) - 1, gen: 1}
}

// Node returns the node for h, or nil if h is stale or zero.
func (g *Graph) Node(h Handle) *Node {
	if h.gen == 0 || h.index < 0 || h.index >= len(g.slots) {
		return nil
	}
	s := &g.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil
	}
	return &s.node
}

// Contains reports whether h refers to a live node.
func (g *Graph) Contains(h Handle) bool { return g.Node(h) != nil }

// Connect adds the directed edge a→b.
func (g *Graph) Connect(a, b Handle, cost Cost) error {
	na, nb := g.Node(a), g.Node(b)
	if na == nil || nb == nil {
		return ErrStaleHandle
	}
	na.forward = append(na.forward, Link{Node: b, Cost: cost})
	nb.reverse = append(nb.reverse, Link{Node: a, Cost: cost})
	g.edges++
	return nil
}

// Disconnect removes one directed edge a→b. It reports whether such an edge
// existed.
func (g *Graph) Disconnect(a, b Handle) bool {
	na, nb := g.Node(a), g.Node(b)
	if na == nil || nb == nil {
		return false
	}
	i := slices.IndexFunc(na.forward, func(l Link) bool { return l.Node == b })
	if i < 0 {
		return false
	}
	na.forward = slices.Delete(na.forward, i, i+1)
	if j := slices.IndexFunc(nb.reverse, func(l Link) bool { return l.Node == a }); j >= 0 {
		nb.reverse = slices.Delete(nb.reverse, j, j+1)
	}
	g.edges--
	return true
}

// DestroyNode removes an isolated node. The graph is left unchanged if the
// node still has edges.
func (g *Graph) DestroyNode(h Handle) error {
	n := g.Node(h)
	if n == nil {
		return ErrStaleHandle
	}
	if !n.Isolated() {
		return ErrNodeConnected
	}
	s := &g.slots[h.index]
	s.node = Node{}
	s.live = false
	s.gen++
	g.free = append(g.free, h.index)
	g.count--
	return nil
}

// Clear removes every node. Handles issued before Clear become stale.
func (g *Graph) Clear() {
	for i := range g.slots {
		s := &g.slots[i]
		if s.live {
			s.node = Node{}
			s.live = false
			s.gen++
			g.free = append(g.free, i)
		}
	}
	g.count = 0
	g.edges = 0
}

// Count returns the number of live nodes.
func (g *Graph) Count() int { return g.count }

// Edges returns the number of directed edges.
func (g *Graph) Edges() int { return g.edges }

// Empty reports whether the graph has no live nodes.
func (g *Graph) Empty() bool { return g.count == 0 }

// Nodes yields every live node in slot order.
func (g *Graph) Nodes() iter.Seq2[Handle, *Node] {
	return func(yield func(Handle, *Node) bool) {
		for i := range g.slots {
			s := &g.slots[i]
			if !s.live {
				continue
			}
			if !yield(Handle{index: i, gen: s.gen}, &s.node) {
				return
			}
		}
	}
}

// Entries yields every live entry node in slot order. Nodes are filtered as
// the sequence advances.
func (g *Graph) Entries() iter.Seq2[Handle, *Node] {
	return func(yield func(Handle, *Node) bool) {
		for h, n := range g.Nodes() {
			if n.Entry && !yield(h, n) {
				return
			}
		}
	}
}
