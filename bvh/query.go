// Copyright © 2026 Freestyle Sculpt contributors.

package bvh

import "container/heap"

// IntersectAABB returns the keys of every leaf whose box overlaps box.
func (t *Tree) IntersectAABB(box AABB) []int {
	var out []int
	if t.root < 0 {
		return out
	}
	var walk func(idx int)
	walk = func(idx int) {
		n := &t.nodes[idx]
		for i := 0; i < n.numEntries; i++ {
			e := &n.entries[i]
			if !e.box.Overlaps(box) {
				continue
			}
			if n.isLeaf {
				out = append(out, e.data)
			} else {
				walk(e.data)
			}
		}
	}
	walk(t.root)
	return out
}

// Leaves calls yield for every (faceKey, box) leaf entry. Diagnostic /
// host debug-visualization use only; never called by core algorithms.
func (t *Tree) Leaves(yield func(key int, box AABB) bool) {
	if t.root < 0 {
		return
	}
	var walk func(idx int) bool
	walk = func(idx int) bool {
		n := &t.nodes[idx]
		for i := 0; i < n.numEntries; i++ {
			e := &n.entries[i]
			if n.isLeaf {
				if !yield(e.data, e.box) {
					return false
				}
			} else if !walk(e.data) {
				return false
			}
		}
		return true
	}
	walk(t.root)
}

// ============================================================================
// best-first traversal, grounded on missinglink-simplefeatures/rtree's
// PrioritySearch: a container/heap priority queue over node/leaf entries,
// ordered by a caller-supplied lower-bound distance so descendants that
// can't beat the current best are never expanded.

type pqItem struct {
	boxBound float64 // lower bound on the true distance/TOI for this entry.
	isLeaf   bool
	data     int // child node index, or face key if isLeaf.
}

type priorityQueue []pqItem

func (q priorityQueue) Len() int            { return len(q) }
func (q priorityQueue) Less(i, j int) bool  { return q[i].boxBound < q[j].boxBound }
func (q priorityQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue) Push(x interface{}) { *q = append(*q, x.(pqItem)) }
func (q *priorityQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// bestFirst walks the tree in ascending order of boxBound (as computed
// by bound), calling test on every leaf candidate in turn. test returns
// the candidate's true metric and whether the candidate is a hit at all;
// a hit replaces the best only when its value is strictly lower.
// Traversal stops once the queue's minimum bound can no longer beat the
// best found value.
func (t *Tree) bestFirst(bound func(AABB) (float64, bool), test func(key int) (value float64, hit bool)) (bestKey int, bestValue float64, found bool) {
	if t.root < 0 {
		return 0, 0, false
	}
	pq := &priorityQueue{}
	heap.Init(pq)

	push := func(idx int) {
		n := &t.nodes[idx]
		for i := 0; i < n.numEntries; i++ {
			e := &n.entries[i]
			b, ok := bound(e.box)
			if !ok {
				continue
			}
			heap.Push(pq, pqItem{boxBound: b, isLeaf: n.isLeaf, data: e.data})
		}
	}
	push(t.root)

	bestValue = posInf
	for pq.Len() > 0 {
		top := (*pq)[0]
		if found && top.boxBound > bestValue {
			break
		}
		item := heap.Pop(pq).(pqItem)
		if !item.isLeaf {
			push(item.data)
			continue
		}
		v, hit := test(item.data)
		if hit && (!found || v < bestValue) {
			bestKey, bestValue, found = item.data, v, true
		}
	}
	return bestKey, bestValue, found
}

const posInf = 1e300
