package mosaic

// orderedSet is an insertion-ordered set. Removing an element yields a
// position that can be passed back to restore so that a remove/restore pair
// leaves iteration order untouched.
type orderedSet[K comparable] struct {
	index      map[K]*setNode[K]
	head, tail *setNode[K]
}

type setNode[K comparable] struct {
	key        K
	prev, next *setNode[K]
}

// position records where a removed key lived: directly after prev, or at
// the head when prev is nil.
type position[K comparable] struct {
	prev  K
	first bool
}

func newOrderedSet[K comparable]() *orderedSet[K] {
	return &orderedSet[K]{index: make(map[K]*setNode[K])}
}

func (s *orderedSet[K]) Len() int { return len(s.index) }

func (s *orderedSet[K]) Has(k K) bool {
	_, ok := s.index[k]
	return ok
}

// Add appends k. It reports false if k was already present.
func (s *orderedSet[K]) Add(k K) bool {
	if s.Has(k) {
		return false
	}
	n := &setNode[K]{key: k, prev: s.tail}
	if s.tail == nil {
		s.head = n
	} else {
		s.tail.next = n
	}
	s.tail = n
	s.index[k] = n
	return true
}

// Remove deletes k and returns its former position.
func (s *orderedSet[K]) Remove(k K) (position[K], bool) {
	n, ok := s.index[k]
	if !ok {
		return position[K]{}, false
	}
	var pos position[K]
	if n.prev == nil {
		pos.first = true
		s.head = n.next
	} else {
		pos.prev = n.prev.key
		n.prev.next = n.next
	}
	if n.next == nil {
		s.tail = n.prev
	} else {
		n.next.prev = n.prev
	}
	delete(s.index, k)
	return pos, true
}

// Restore reinserts k at pos. If the anchor is gone, k is appended.
func (s *orderedSet[K]) Restore(k K, pos position[K]) {
	if s.Has(k) {
		return
	}
	var after *setNode[K]
	if !pos.first {
		a, ok := s.index[pos.prev]
		if !ok {
			s.Add(k)
			return
		}
		after = a
	}
	n := &setNode[K]{key: k, prev: after}
	if after == nil {
		n.next = s.head
		s.head = n
	} else {
		n.next = after.next
		after.next = n
	}
	if n.next == nil {
		s.tail = n
	} else {
		n.next.prev = n
	}
	s.index[k] = n
}

// Keys returns a snapshot in iteration order.
func (s *orderedSet[K]) Keys() []K {
	out := make([]K, 0, len(s.index))
	for n := s.head; n != nil; n = n.next {
		out = append(out, n.key)
	}
	return out
}

func (s *orderedSet[K]) clone() *orderedSet[K] {
	c := newOrderedSet[K]()
	for n := s.head; n != nil; n = n.next {
		c.Add(n.key)
	}
	return c
}

// multiset counts occurrences of keys. It has no iteration order of its
// own; callers derive one from an orderedSet.
type multiset[K comparable] struct {
	count map[K]int
}

func newMultiset[K comparable]() *multiset[K] {
	return &multiset[K]{count: make(map[K]int)}
}

func (m *multiset[K]) Add(k K) { m.count[k]++ }

// Remove drops one occurrence of k.
func (m *multiset[K]) Remove(k K) {
	switch c := m.count[k]; {
	case c <= 0:
		return
	case c == 1:
		delete(m.count, k)
	default:
		m.count[k] = c - 1
	}
}

// Clear drops every occurrence of k.
func (m *multiset[K]) Clear(k K) { delete(m.count, k) }

func (m *multiset[K]) Count(k K) int { return m.count[k] }

// Len is the number of distinct keys.
func (m *multiset[K]) Len() int { return len(m.count) }
