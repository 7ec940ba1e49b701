// Package clock abstracts wall time and one-shot timers so scheduled work
// can be driven deterministically in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a cancellable one-shot callback.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already fired or the timer was already stopped.
	Stop() bool
}

// Clock provides the current time and one-shot scheduling.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is the system clock.
type Real struct{}

// Now returns time.Now().
func (Real) Now() time.Time { return time.Now() }

// AfterFunc schedules f on its own goroutine after d.
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Mock is a manually advanced clock. Callbacks run synchronously on the
// goroutine calling Advance, in deadline order.
type Mock struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*mockTimer
}

type mockTimer struct {
	m     *Mock
	when  time.Time
	seq   int
	f     func()
	fired bool
}

// NewMock creates a mock clock starting at the given time.
func NewMock(start time.Time) *Mock {
	return &Mock{now: start}
}

// Now returns the mocked time.
func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc registers f to run once the clock has advanced by d.
func (m *Mock) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &mockTimer{m: m, when: m.now.Add(d), seq: m.seq, f: f}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves time forward by d, firing every timer that comes due,
// including timers scheduled by callbacks during the advance.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		m.now = t.when
		m.mu.Unlock()
		t.f()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

// Pending reports the number of timers not yet fired or stopped.
func (m *Mock) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// popDue removes and returns the earliest timer due by target. Caller holds mu.
func (m *Mock) popDue(target time.Time) *mockTimer {
	if len(m.pending) == 0 {
		return nil
	}
	sort.Slice(m.pending, func(i, j int) bool {
		a, b := m.pending[i], m.pending[j]
		if a.when.Equal(b.when) {
			return a.seq < b.seq
		}
		return a.when.Before(b.when)
	})
	t := m.pending[0]
	if t.when.After(target) {
		return nil
	}
	m.pending = m.pending[1:]
	t.fired = true
	return t
}

func (t *mockTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.fired {
		return false
	}
	for i, p := range t.m.pending {
		if p == t {
			t.m.pending = append(t.m.pending[:i], t.m.pending[i+1:]...)
			t.fired = true
			return true
		}
	}
	return false
}
