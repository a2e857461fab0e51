// Copyright © 2026 Freestyle Sculpt contributors.

// Package id provides a generational arena allocator: stable opaque keys
// that never alias a live id once the slot they named has been removed
// and reused.
//
// The bit layout (20-bit index, 12-bit generation) and the free-list-once-
// a-threshold-is-reached recycling policy are carried over from
// gazed-vu's entity.go, generalized from a single hardcoded entity kind
// to any element type T so vertices, half-edges and faces can each get
// their own allocator without three copies of the same bookkeeping.
package id

// Id is an opaque generational handle. The low 20 bits hold the slot
// index plus one (so Nil never names a live slot); the high 12 bits are
// the generation,
// bumped every time the slot is freed so a stale Id never aliases the
// live occupant of a reused slot.
type Id uint32

const (
	idBits    = 20
	genBits   = 12
	maxIndex  = (1 << idBits) - 1
	maxGen    = (1 << genBits) - 1
	maxFreeAt = 1 << (genBits - 1) // start recycling once the free list exceeds this size.
)

// Nil is the zero value, never produced by Allocator.Insert.
const Nil Id = 0

func (i Id) index() uint32 { return uint32(i) & maxIndex }
func (i Id) gen() uint16   { return uint16((uint32(i) >> idBits) & maxGen) }

func pack(index uint32, gen uint16) Id {
	return Id(index&maxIndex | uint32(gen&maxGen)<<idBits)
}

// slot holds one element of T alongside the generation that must match
// an Id for that Id to be considered live.
type slot[T any] struct {
	gen   uint16
	live  bool
	value T
}

// Allocator is a generational arena for values of type T. The zero value
// is ready to use.
type Allocator[T any] struct {
	slots []slot[T]
	free  []uint32 // indices ready for reuse, recycled once len(free) > maxFreeAt.
	count int
}

// Insert stores v in a fresh or recycled slot and returns its Id.
func (a *Allocator[T]) Insert(v T) Id {
	var index uint32
	if len(a.free) > maxFreeAt {
		index = a.free[0]
		a.free = a.free[1:]
	} else {
		a.slots = append(a.slots, slot[T]{})
		index = uint32(len(a.slots) - 1)
		if index >= maxIndex {
			if len(a.free) == 0 {
				panic("id: allocator exhausted, no free slots and index space full")
			}
			a.slots = a.slots[:len(a.slots)-1]
			index = a.free[0]
			a.free = a.free[1:]
		}
	}
	s := &a.slots[index]
	s.live = true
	s.value = v
	a.count++
	return pack(index+1, s.gen) // +1 so index 0 is never a valid live id.
}

// InsertWithKey inserts the value produced by f, which receives the Id
// that will be assigned to it before f runs — useful when the stored
// value needs to know its own id (faces store their own Id, §3).
func (a *Allocator[T]) InsertWithKey(f func(Id) T) Id {
	placeholder := a.Insert(*new(T))
	v := f(placeholder)
	a.slots[placeholder.index()-1].value = v
	return placeholder
}

func (i Id) valid() bool { return i != Nil }

// Remove frees the slot for i, bumping its generation so stale copies of
// i never alias whatever gets inserted into the slot next. No-op if i is
// already stale or nil.
func (a *Allocator[T]) Remove(i Id) {
	if !a.Contains(i) {
		return
	}
	idx := i.index() - 1
	s := &a.slots[idx]
	s.live = false
	var zero T
	s.value = zero
	s.gen++
	a.count--
	a.free = append(a.free, idx)
}

// Contains reports whether i currently names a live element.
func (a *Allocator[T]) Contains(i Id) bool {
	if !i.valid() {
		return false
	}
	idx := i.index() - 1
	if int(idx) >= len(a.slots) {
		return false
	}
	s := &a.slots[idx]
	return s.live && s.gen == i.gen()
}

// Get returns the value named by i and true, or the zero value and false
// if i is stale (removed or never allocated) — a StaleId lookup is never
// an error, only an absence.
func (a *Allocator[T]) Get(i Id) (T, bool) {
	if !a.Contains(i) {
		var zero T
		return zero, false
	}
	return a.slots[i.index()-1].value, true
}

// GetMut returns a pointer to the value named by i, or nil if i is stale.
// The pointer is only valid until the next Insert/Remove (a.slots may
// reallocate its backing array).
func (a *Allocator[T]) GetMut(i Id) *T {
	if !a.Contains(i) {
		return nil
	}
	return &a.slots[i.index()-1].value
}

// Len returns the number of live elements.
func (a *Allocator[T]) Len() int { return a.count }

// All calls yield for every live (Id, value) pair, in slot order. Stops
// early if yield returns false.
func (a *Allocator[T]) All(yield func(Id, T) bool) {
	for idx := range a.slots {
		s := &a.slots[idx]
		if !s.live {
			continue
		}
		if !yield(pack(uint32(idx+1), s.gen), s.value) {
			return
		}
	}
}
