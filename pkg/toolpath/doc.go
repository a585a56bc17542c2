// Package toolpath defines labeled toolpath geometry shared by the ordering
// core, its serialization, and its renderers.
//
// A [Label] tags geometry with what it is ([Kind]), who it belongs to
// ([Owner]), and how strongly the ordering should prefer it (Priority).
// A [LabeledPath] is a run: a polyline carrying one label. The optimizer emits
// runs in print order; consecutive runs with different labels share their
// junction point so travel stays continuous.
//
// # Labels
//
// The zero Label is invalid and marks "no active run". Synthetic travel edges
// and the runs created from them carry [Connection], whose priority (-1) sorts
// below every printable label.
package toolpath
