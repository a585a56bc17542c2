// Package containment classifies nested closed loops.
//
// A [Tree] is either a root, which has no loop and contains everything, or a
// normal tree holding one loop and the trees directly nested inside it.
// Siblings never overlap: each child's loop lies inside its parent's loop and
// outside every other child's loop.
//
// Trees own their children by value. [Tree.Swap] exchanges two trees in
// constant time, which lets callers splice prebuilt subtrees without copying.
//
//	root := containment.NewRoot()
//	root.Insert(outer)
//	root.Insert(hole)
//	t := root.Select(p) // deepest loop around p, or root
package containment
