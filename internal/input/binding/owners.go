package binding

import "math"

// ownerSlots hands out owner handles from a slot map. Each slot carries a
// generation that only increases, so a released handle is never issued
// again, even when its slot is reused.
type ownerSlots struct {
	gens []uint32
	live []bool
	free []uint32
}

func newOwnerSlots() *ownerSlots {
	return &ownerSlots{}
}

// acquire issues a fresh handle.
func (s *ownerSlots) acquire() Owner {
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		s.gens[idx]++
		s.live[idx] = true
		return Owner{index: idx, gen: s.gens[idx]}
	}

	idx := uint32(len(s.gens))
	s.gens = append(s.gens, 1)
	s.live = append(s.live, true)
	return Owner{index: idx, gen: 1}
}

// isLive reports whether o is currently issued.
func (s *ownerSlots) isLive(o Owner) bool {
	if o.IsZero() || int(o.index) >= len(s.gens) {
		return false
	}
	return s.live[o.index] && s.gens[o.index] == o.gen
}

// release invalidates o. A slot whose generation is exhausted is retired
// instead of being returned to the free list.
func (s *ownerSlots) release(o Owner) bool {
	if !s.isLive(o) {
		return false
	}
	s.live[o.index] = false
	if s.gens[o.index] == math.MaxUint32 {
		return true
	}
	s.free = append(s.free, o.index)
	return true
}

// count returns the number of live handles.
func (s *ownerSlots) count() int {
	n := 0
	for _, l := range s.live {
		if l {
			n++
		}
	}
	return n
}
