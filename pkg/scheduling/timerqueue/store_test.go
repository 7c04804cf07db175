package timerqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func storeEvent(name string, expiry time.Duration) *Event {
	e := newEvent(func(any) {}, name, expiry)
	e.armAfter(epoch, expiry)
	return e
}

func names(events []*Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Arg().(string)
	}
	return out
}

func TestStore_InsertOrdersByExpiry(t *testing.T) {
	s := newStore()
	assert.True(t, s.empty())
	assert.Nil(t, s.peek())

	for _, e := range []*Event{
		storeEvent("c", 3*time.Second),
		storeEvent("a", 1*time.Second),
		storeEvent("d", 4*time.Second),
		storeEvent("b", 2*time.Second),
	} {
		s.insert(e)
	}

	assert.Equal(t, 4, s.len())
	assert.Equal(t, "a", s.peek().Arg())
	assert.Equal(t, []string{"a", "b", "c", "d"}, names(s.snapshot()))
	assert.Equal(t, 4, s.len(), "snapshot must not unlink")
}

func TestStore_EqualExpiriesKeepInsertionOrder(t *testing.T) {
	s := newStore()
	s.insert(storeEvent("late", 2*time.Second))
	for _, n := range []string{"first", "second", "third"} {
		s.insert(storeEvent(n, time.Second))
	}

	assert.Equal(t, []string{"first", "second", "third", "late"}, names(s.snapshot()))
	assert.Equal(t, []string{"first", "second", "third", "late"}, names(s.drain()))
	assert.True(t, s.empty())
}

func TestStore_ReinsertGoesAfterPeers(t *testing.T) {
	s := newStore()
	a := storeEvent("a", time.Second)
	b := storeEvent("b", time.Second)
	s.insert(a)
	s.insert(b)

	require.True(t, s.remove(a))
	s.insert(a)

	assert.Equal(t, []string{"b", "a"}, names(s.snapshot()))
}

func TestStore_Remove(t *testing.T) {
	s := newStore()
	events := []*Event{
		storeEvent("a", 1*time.Second),
		storeEvent("b", 2*time.Second),
		storeEvent("c", 3*time.Second),
	}
	for _, e := range events {
		s.insert(e)
	}

	assert.True(t, s.remove(events[1]))
	assert.Equal(t, -1, events[1].index)
	assert.False(t, s.remove(events[1]), "second remove is a no-op")
	assert.Equal(t, []string{"a", "c"}, names(s.snapshot()))

	other := newStore()
	foreign := storeEvent("x", time.Second)
	other.insert(foreign)
	assert.False(t, s.remove(foreign), "event linked elsewhere")
	assert.Equal(t, 1, other.len())
}

func TestStore_PopDue(t *testing.T) {
	s := newStore()
	for _, e := range []*Event{
		storeEvent("b", 2*time.Second),
		storeEvent("a", 1*time.Second),
		storeEvent("now", 0),
		storeEvent("c", 3*time.Second),
	} {
		s.insert(e)
	}

	assert.Empty(t, s.popDue(epoch.Add(-time.Millisecond)))

	due := s.popDue(epoch.Add(2 * time.Second))
	assert.Equal(t, []string{"now", "a", "b"}, names(due))
	for _, e := range due {
		assert.Equal(t, -1, e.index)
	}
	assert.Equal(t, "c", s.peek().Arg())
}

func TestStore_HeapStaysSorted(t *testing.T) {
	s := newStore()
	var events []*Event
	for i := 0; i < 200; i++ {
		e := storeEvent("e", time.Duration((i*7919)%97)*time.Millisecond)
		events = append(events, e)
		s.insert(e)
	}
	for i := 0; i < len(events); i += 3 {
		require.True(t, s.remove(events[i]))
	}

	prev := s.drain()
	for i := 1; i < len(prev); i++ {
		assert.True(t, before(prev[i-1], prev[i]), "position %d out of order", i)
	}
}
