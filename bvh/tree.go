// Copyright © 2026 Freestyle Sculpt contributors.

// Package bvh implements a wide (quaternary) axis-aligned bounding
// volume hierarchy over triangle-face leaves, keyed by a caller-assigned
// contiguous integer (mesh.Face.Index).
//
// The flat node-array layout and entry{box, data} representation are
// grounded on missinglink-simplefeatures/rtree (an R-tree over the same
// kind of flat array, generalized here from its binary/wide split to a
// fixed quaternary fan-out and from record-only leaves to the
// pre_update_or_insert/refit lifecycle this spec requires).
package bvh

import "github.com/madmaxio/freestyle-sculpt/math/lin"

const maxChildren = 4

// entry is a child pointer (internal node) or a face leaf (leaf node).
type entry struct {
	box AABB
	// data is a child node index for internal-node entries, or the
	// caller's face key for leaf-node entries.
	data int
}

type node struct {
	entries    [1 + maxChildren]entry // +1 slop slot simplifies overflow-then-split.
	numEntries int
	parent     int
	isLeaf     bool
}

// Tree is an in-memory BVH. The zero value is not ready to use; call New.
type Tree struct {
	nodes []node
	root  int // -1 when empty.

	leafOf  map[int]int // face key -> index of the leaf node currently holding it.
	margin  float64     // loose margin applied to leaf boxes on insert/refit.
	dirty   map[int]bool
	pending map[int]bool // keys marked pre_update_or_insert but not yet present.

	// workspace scratch reused across Refit calls, per §5 (no
	// allocation on steady-state use).
	scratchKeys []int
}

// New returns an empty BVH.
func New() *Tree {
	return &Tree{
		root:    -1,
		leafOf:  make(map[int]int),
		dirty:   make(map[int]bool),
		pending: make(map[int]bool),
	}
}

// Count returns the number of leaves (faces) currently indexed.
func (t *Tree) Count() int { return len(t.leafOf) }

// Depth returns the number of node layers from root to leaf, or 0 if
// the tree is empty. Diagnostic only.
func (t *Tree) Depth() int {
	if t.root < 0 {
		return 0
	}
	d := 1
	idx := t.root
	for !t.nodes[idx].isLeaf {
		d++
		idx = t.nodes[idx].entries[0].data
	}
	return d
}

// Leaf is one (key, box) pair used to seed ClearAndRebuild.
type Leaf struct {
	Key int
	Box AABB
}

// ClearAndRebuild discards the current tree and rebuilds from scratch
// over the given leaves, applying looseMargin to every leaf box so small
// subsequent position changes don't immediately require a refit.
func (t *Tree) ClearAndRebuild(leaves []Leaf, looseMargin float64) {
	t.margin = looseMargin
	items := make([]buildItem, len(leaves))
	for i, l := range leaves {
		box := l.Box.Expand(looseMargin)
		items[i] = buildItem{key: l.Key, box: box, center: box.Center()}
	}
	t.rebuildFromItems(items)
}

// rebuildFromItems resets the tree and builds fresh over items whose
// boxes are already final (margin already applied by the caller).
func (t *Tree) rebuildFromItems(items []buildItem) {
	t.nodes = t.nodes[:0]
	t.root = -1
	for k := range t.leafOf {
		delete(t.leafOf, k)
	}
	for k := range t.dirty {
		delete(t.dirty, k)
	}
	for k := range t.pending {
		delete(t.pending, k)
	}
	if len(items) == 0 {
		return
	}
	t.root = t.buildRange(items, -1)
}

// buildItem is the scratch record used only during ClearAndRebuild.
type buildItem struct {
	key    int
	box    AABB
	center lin.V3
}

func axisValue(v lin.V3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
