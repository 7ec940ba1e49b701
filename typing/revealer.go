// Package typing implements the timed character-by-character reveal used
// by the overlay text.
package typing

import (
	"errors"
	"sync"
	"time"

	"github.com/pthm-cable/antigravity/clock"
)

var (
	// ErrAlreadyStarted is returned when Start is called more than once.
	ErrAlreadyStarted = errors.New("typing: reveal already started")
	// ErrStopped is returned when Start is called after Stop.
	ErrStopped = errors.New("typing: revealer stopped")
)

// State is the revealer lifecycle state.
type State uint8

const (
	Idle State = iota
	Revealing
	Done
	Stopped
)

var stateNames = map[State]string{
	Idle:      "idle",
	Revealing: "revealing",
	Done:      "done",
	Stopped:   "stopped",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// DefaultBlink is the caret blink period.
const DefaultBlink = time.Second

// Revealer reveals a string one rune at a time. Timer callbacks and
// readers may run on different goroutines; all state is guarded by mu.
type Revealer struct {
	clk   clock.Clock
	blink time.Duration

	mu        sync.Mutex
	runes     []rune
	revealed  int
	armed     bool
	started   bool
	state     State
	interval  time.Duration
	pending   clock.Timer
	startedAt time.Time
	mutations int
}

// New creates an idle revealer driven by clk.
func New(clk clock.Clock) *Revealer {
	return &Revealer{clk: clk, blink: DefaultBlink}
}

// SetBlink sets the caret blink period. Non-positive disables blinking.
func (r *Revealer) SetBlink(d time.Duration) {
	r.mu.Lock()
	r.blink = d
	r.mu.Unlock()
}

// Start schedules the reveal of text: after delay, one rune every interval.
// A revealer runs once; later calls return ErrAlreadyStarted.
func (r *Revealer) Start(text string, interval, delay time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case Stopped:
		return ErrStopped
	case Idle:
		if r.armed {
			return ErrAlreadyStarted
		}
	default:
		return ErrAlreadyStarted
	}

	r.armed = true
	r.runes = []rune(text)
	r.interval = interval
	r.mutations++

	if delay <= 0 {
		r.beginLocked()
		return nil
	}
	r.pending = r.clk.AfterFunc(delay, r.onDelay)
	return nil
}

func (r *Revealer) onDelay() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Idle {
		return
	}
	r.beginLocked()
}

// beginLocked enters Revealing. Caller holds mu.
func (r *Revealer) beginLocked() {
	r.started = true
	r.startedAt = r.clk.Now()
	r.mutations++
	if len(r.runes) == 0 {
		r.state = Done
		r.pending = nil
		return
	}
	r.state = Revealing
	r.pending = r.clk.AfterFunc(r.interval, r.onTick)
}

func (r *Revealer) onTick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Revealing {
		return
	}
	r.revealed++
	r.mutations++
	if r.revealed >= len(r.runes) {
		r.state = Done
		r.pending = nil
		return
	}
	r.pending = r.clk.AfterFunc(r.interval, r.onTick)
}

// Stop cancels any pending delay or character timer. After Stop the
// revealed text is frozen.
func (r *Revealer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending != nil {
		r.pending.Stop()
		r.pending = nil
	}
	if r.state == Idle || r.state == Revealing {
		r.state = Stopped
	}
}

// Text returns the revealed prefix.
func (r *Revealer) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return string(r.runes[:r.revealed])
}

// Source returns the full target text.
func (r *Revealer) Source() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return string(r.runes)
}

// Revealed returns the number of runes shown.
func (r *Revealer) Revealed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.revealed
}

// Started reports whether the initial delay has elapsed.
func (r *Revealer) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// State returns the lifecycle state.
func (r *Revealer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Mutations counts every state change made so far.
func (r *Revealer) Mutations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mutations
}

// Cursor reports whether the caret is visible at now. It is solid before
// the reveal starts and blinks with the configured period afterwards.
func (r *Revealer) Cursor(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started || r.blink <= 0 {
		return true
	}
	phase := now.Sub(r.startedAt) % r.blink
	return phase < r.blink/2
}
