// Copyright © 2026 Freestyle Sculpt contributors.

package bvh

import "golang.org/x/exp/slices"

// buildRange recursively partitions items into a quaternary subtree and
// returns the index of the node rooting it. parent is the index of the
// node that will own the returned node as a child entry (set once the
// caller appends the entry); pass -1 for the tree root.
func (t *Tree) buildRange(items []buildItem, parent int) int {
	if len(items) <= maxChildren {
		return t.makeLeaf(items, parent)
	}

	axis := longestAxis(items)
	slices.SortFunc(items, func(a, b buildItem) int {
		av, bv := axisValue(a.center, axis), axisValue(b.center, axis)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	})

	groups := splitIntoGroups(items, maxChildren)
	idx := t.newNode(false, parent)
	for _, g := range groups {
		childIdx := t.buildRange(g, idx)
		t.appendChild(idx, t.nodes[childIdx].boundsFromEntries(), childIdx)
	}
	return idx
}

func (t *Tree) makeLeaf(items []buildItem, parent int) int {
	idx := t.newNode(true, parent)
	for _, it := range items {
		t.appendRecord(idx, it.box, it.key)
		t.leafOf[it.key] = idx
	}
	return idx
}

func (t *Tree) newNode(isLeaf bool, parent int) int {
	t.nodes = append(t.nodes, node{isLeaf: isLeaf, parent: parent})
	return len(t.nodes) - 1
}

func (t *Tree) appendRecord(nodeIdx int, box AABB, key int) {
	n := &t.nodes[nodeIdx]
	n.entries[n.numEntries] = entry{box: box, data: key}
	n.numEntries++
}

func (t *Tree) appendChild(nodeIdx int, box AABB, childIdx int) {
	n := &t.nodes[nodeIdx]
	n.entries[n.numEntries] = entry{box: box, data: childIdx}
	n.numEntries++
	t.nodes[childIdx].parent = nodeIdx
}

// boundsFromEntries returns the union of all of a node's entry boxes.
func (n *node) boundsFromEntries() AABB {
	box := Empty()
	for i := 0; i < n.numEntries; i++ {
		box = box.Union(n.entries[i].box)
	}
	return box
}

func longestAxis(items []buildItem) int {
	box := Empty()
	for _, it := range items {
		box = box.Union(AABB{Min: it.center, Max: it.center})
	}
	dx, dy, dz := box.Max.X-box.Min.X, box.Max.Y-box.Min.Y, box.Max.Z-box.Min.Z
	switch {
	case dx >= dy && dx >= dz:
		return 0
	case dy >= dz:
		return 1
	default:
		return 2
	}
}

// splitIntoGroups divides a (centroid-axis-sorted) slice into up to
// groupCount roughly-equal contiguous chunks.
func splitIntoGroups(items []buildItem, groupCount int) [][]buildItem {
	n := len(items)
	if n <= groupCount {
		groups := make([][]buildItem, n)
		for i := range items {
			groups[i] = items[i : i+1]
		}
		return groups
	}
	groups := make([][]buildItem, 0, groupCount)
	base := n / groupCount
	extra := n % groupCount
	start := 0
	for g := 0; g < groupCount; g++ {
		size := base
		if g < extra {
			size++
		}
		if size == 0 {
			continue
		}
		groups = append(groups, items[start:start+size])
		start += size
	}
	return groups
}
