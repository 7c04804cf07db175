package timerqueue

import (
	"container/heap"
	"sort"
	"time"
)

// eventHeap orders events by expiry, then by insertion sequence so that equal
// expiries fire in the order they were linked.
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	return before(h[i], h[j])
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *eventHeap) Push(x interface{}) {
	e := x.(*Event)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil // avoid memory leak
	e.index = -1
	*h = old[:n-1]
	return e
}

func before(a, b *Event) bool {
	if a.expiry.Equal(b.expiry) {
		return a.seq < b.seq
	}
	return a.expiry.Before(b.expiry)
}

// store is the expiry-ordered set of linked events. It is not safe for
// concurrent use; the queue guards it with its mutex.
type store struct {
	h   eventHeap
	seq uint64
}

func newStore() *store {
	return &store{}
}

// insert links e after every linked event with an expiry <= e's.
func (s *store) insert(e *Event) {
	s.seq++
	e.seq = s.seq
	heap.Push(&s.h, e)
}

// remove unlinks e. It reports false if e is not linked into this store.
func (s *store) remove(e *Event) bool {
	if !s.contains(e) {
		return false
	}
	heap.Remove(&s.h, e.index)
	return true
}

func (s *store) contains(e *Event) bool {
	return e.index >= 0 && e.index < len(s.h) && s.h[e.index] == e
}

// peek returns the earliest event, or nil when empty.
func (s *store) peek() *Event {
	if len(s.h) == 0 {
		return nil
	}
	return s.h[0]
}

func (s *store) len() int { return len(s.h) }

func (s *store) empty() bool { return len(s.h) == 0 }

// popDue unlinks and returns, in order, every event due at now.
func (s *store) popDue(now time.Time) []*Event {
	var due []*Event
	for len(s.h) > 0 && !s.h[0].expiry.After(now) {
		due = append(due, heap.Pop(&s.h).(*Event))
	}
	return due
}

// snapshot returns the linked events in firing order without unlinking them.
func (s *store) snapshot() []*Event {
	out := make([]*Event, len(s.h))
	copy(out, s.h)
	sort.Slice(out, func(i, j int) bool { return before(out[i], out[j]) })
	return out
}

// drain unlinks and returns every event in firing order.
func (s *store) drain() []*Event {
	out := make([]*Event, 0, len(s.h))
	for len(s.h) > 0 {
		out = append(out, heap.Pop(&s.h).(*Event))
	}
	return out
}
