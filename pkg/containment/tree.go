package containment

import (
	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/geom"
)

// Tree is a node of the containment hierarchy.
type Tree struct {
	loop     geom.Loop
	valid    bool
	children []Tree
}

// NewRoot returns an empty root tree.
func NewRoot() *Tree { return &Tree{} }

// New returns a normal tree for loop. The loop should be non-empty.
func New(loop geom.Loop) *Tree { return &Tree{loop: loop, valid: true} }

// IsValid reports whether t is a normal tree. Roots are not valid.
func (t *Tree) IsValid() bool { return t.valid }

// Loop returns the tree's loop, or nil for a root.
func (t *Tree) Loop() geom.Loop { return t.loop }

// Children returns the direct children. The slice aliases t's storage.
func (t *Tree) Children() []Tree { return t.children }

// Contains reports whether t contains other. A root contains every normal
// tree and no root; a normal tree never contains a root. Otherwise the first
// vertex of other's loop is tested against t's loop.
func (t *Tree) Contains(other *Tree) bool {
	if !t.valid {
		return other.valid
	}
	if !other.valid || len(other.loop) == 0 {
		return false
	}
	return t.loop.Encloses(other.loop[0])
}

// ContainsPoint reports whether p lies inside t's loop. Roots contain every
// point.
func (t *Tree) ContainsPoint(p r2.Point) bool {
	if !t.valid {
		return true
	}
	return t.loop.Encloses(p)
}

// Select returns the deepest descendant whose loop contains p, or t itself
// when no child does. The descent stops at the first level where no child
// contains p.
func (t *Tree) Select(p r2.Point) *Tree {
	cur := t
	for {
		next := cur.childContaining(p)
		if next == nil {
			return cur
		}
		cur = next
	}
}

func (t *Tree) childContaining(p r2.Point) *Tree {
	for i := range t.children {
		if t.children[i].ContainsPoint(p) {
			return &t.children[i]
		}
	}
	return nil
}

// Swap exchanges the contents of t and other.
func (t *Tree) Swap(other *Tree) { *t, *other = *other, *t }

// Insert places loop at its depth in the hierarchy and returns the node
// created for it. Existing siblings that the new loop contains become its
// children. Pointers previously returned by Insert or Select may be
// invalidated.
func (t *Tree) Insert(loop geom.Loop) *Tree {
	node := New(loop)
	return t.insert(node)
}

func (t *Tree) insert(node *Tree) *Tree {
	for i := range t.children {
		if t.children[i].Contains(node) {
			return t.children[i].insert(node)
		}
	}

	kept := t.children[:0]
	for _, c := range t.children {
		if node.Contains(&c) {
			node.children = append(node.children, c)
		} else {
			kept = append(kept, c)
		}
	}
	t.children = append(kept, *node)
	return &t.children[len(t.children)-1]
}

// Walk calls fn for t and every descendant in depth-first pre-order. The
// root of the walk has depth 0. Returning false from fn skips the subtree.
func (t *Tree) Walk(fn func(t *Tree, depth int) bool) {
	t.walk(fn, 0)
}

func (t *Tree) walk(fn func(*Tree, int) bool, depth int) {
	if !fn(t, depth) {
		return
	}
	for i := range t.children {
		t.children[i].walk(fn, depth+1)
	}
}

// Len returns the number of normal trees in t, including t itself.
func (t *Tree) Len() int {
	n := 0
	t.Walk(func(c *Tree, _ int) bool {
		if c.valid {
			n++
		}
		return true
	})
	return n
}

// Depth returns the depth of the deepest loop containing p, counting from
// zero for t itself.
func (t *Tree) Depth(p r2.Point) int {
	d := 0
	cur := t
	for {
		next := cur.childContaining(p)
		if next == nil {
			return d
		}
		cur = next
		d++
	}
}
