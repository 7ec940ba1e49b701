package typing

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pthm-cable/antigravity/clock"
)

func newMock() *clock.Mock {
	return clock.NewMock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestRevealTwoCharacters(t *testing.T) {
	clk := newMock()
	r := New(clk)
	if err := r.Start("GO", 50*time.Millisecond, 0); err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		advance time.Duration
		count   int
		text    string
		state   State
	}{
		{0, 0, "", Revealing},
		{50 * time.Millisecond, 1, "G", Revealing},
		{50 * time.Millisecond, 2, "GO", Done},
		{time.Second, 2, "GO", Done},
	}
	for i, st := range steps {
		clk.Advance(st.advance)
		if r.Revealed() != st.count || r.Text() != st.text || r.State() != st.state {
			t.Errorf("step %d: revealed=%d text=%q state=%v, want %d %q %v",
				i, r.Revealed(), r.Text(), r.State(), st.count, st.text, st.state)
		}
	}
	if clk.Pending() != 0 {
		t.Errorf("pending timers after done = %d", clk.Pending())
	}
}

func TestInitialDelay(t *testing.T) {
	clk := newMock()
	r := New(clk)
	if err := r.Start("Hi", 50*time.Millisecond, time.Second); err != nil {
		t.Fatal(err)
	}

	clk.Advance(999 * time.Millisecond)
	if r.Started() || r.State() != Idle {
		t.Fatalf("started before delay: started=%v state=%v", r.Started(), r.State())
	}
	clk.Advance(time.Millisecond)
	if !r.Started() || r.State() != Revealing || r.Revealed() != 0 {
		t.Fatalf("after delay: started=%v state=%v revealed=%d", r.Started(), r.State(), r.Revealed())
	}
	clk.Advance(100 * time.Millisecond)
	if r.Text() != "Hi" || r.State() != Done {
		t.Errorf("text=%q state=%v", r.Text(), r.State())
	}
}

func TestRevealIsMonotonic(t *testing.T) {
	clk := newMock()
	r := New(clk)
	text := "Initializing antigravity environment..."
	if err := r.Start(text, 50*time.Millisecond, time.Second); err != nil {
		t.Fatal(err)
	}
	last := 0
	for i := 0; i < 200; i++ {
		clk.Advance(10 * time.Millisecond)
		n := r.Revealed()
		if n < last {
			t.Fatalf("revealed went from %d to %d", last, n)
		}
		if n > len(text) {
			t.Fatalf("revealed %d exceeds length %d", n, len(text))
		}
		last = n
	}
	if r.Text() != text {
		t.Errorf("final text = %q", r.Text())
	}
}

func TestRuneAware(t *testing.T) {
	clk := newMock()
	r := New(clk)
	if err := r.Start("héllo→", 10*time.Millisecond, 0); err != nil {
		t.Fatal(err)
	}
	clk.Advance(20 * time.Millisecond)
	if r.Text() != "hé" {
		t.Errorf("text after 2 ticks = %q, want %q", r.Text(), "hé")
	}
	clk.Advance(40 * time.Millisecond)
	if r.Text() != "héllo→" || r.State() != Done {
		t.Errorf("final = %q (%v)", r.Text(), r.State())
	}
}

func TestEmptyText(t *testing.T) {
	clk := newMock()
	r := New(clk)
	if err := r.Start("", 10*time.Millisecond, 0); err != nil {
		t.Fatal(err)
	}
	if r.State() != Done || !r.Started() {
		t.Errorf("empty text state = %v started=%v", r.State(), r.Started())
	}
}

func TestStartRejectsReentry(t *testing.T) {
	tests := []struct {
		name    string
		advance time.Duration
	}{
		{"while delayed", 10 * time.Millisecond},
		{"while revealing", 120 * time.Millisecond},
		{"when done", time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := newMock()
			r := New(clk)
			if err := r.Start("abc", 50*time.Millisecond, 50*time.Millisecond); err != nil {
				t.Fatal(err)
			}
			clk.Advance(tt.advance)
			before := r.Mutations()
			if err := r.Start("xyz", time.Millisecond, 0); !errors.Is(err, ErrAlreadyStarted) {
				t.Errorf("second Start err = %v", err)
			}
			if r.Mutations() != before {
				t.Error("rejected Start mutated state")
			}
			clk.Advance(time.Second)
			if r.Text() != "abc" {
				t.Errorf("text = %q, want abc", r.Text())
			}
		})
	}
}

func TestStopFreezesState(t *testing.T) {
	tests := []struct {
		name    string
		advance time.Duration
		count   int
	}{
		{"during delay", 500 * time.Millisecond, 0},
		{"mid reveal", 1120 * time.Millisecond, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := newMock()
			r := New(clk)
			if err := r.Start("teardown", 50*time.Millisecond, time.Second); err != nil {
				t.Fatal(err)
			}
			clk.Advance(tt.advance)
			r.Stop()
			frozen := r.Mutations()

			clk.Advance(10 * time.Second)
			if r.Mutations() != frozen {
				t.Errorf("mutations changed after Stop: %d -> %d", frozen, r.Mutations())
			}
			if r.Revealed() != tt.count {
				t.Errorf("revealed = %d, want %d", r.Revealed(), tt.count)
			}
			if r.State() != Stopped {
				t.Errorf("state = %v, want stopped", r.State())
			}
			if clk.Pending() != 0 {
				t.Errorf("pending timers = %d, want 0", clk.Pending())
			}
			if err := r.Start("again", time.Millisecond, 0); !errors.Is(err, ErrStopped) {
				t.Errorf("Start after Stop err = %v", err)
			}
		})
	}
}

func TestStopAfterDoneKeepsDone(t *testing.T) {
	clk := newMock()
	r := New(clk)
	_ = r.Start("ok", time.Millisecond, 0)
	clk.Advance(time.Second)
	r.Stop()
	if r.State() != Done {
		t.Errorf("state = %v, want done", r.State())
	}
}

func TestStopWithRealClock(t *testing.T) {
	r := New(clock.Real{})
	if err := r.Start("abcdefghijklmnopqrstuvwxyz", time.Millisecond, 0); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	r.Stop()
	frozen := r.Mutations()
	time.Sleep(20 * time.Millisecond)
	if r.Mutations() != frozen {
		t.Errorf("mutations changed after Stop: %d -> %d", frozen, r.Mutations())
	}
}

func TestConcurrentReaders(t *testing.T) {
	r := New(clock.Real{})
	_ = r.Start("concurrent", time.Millisecond, 0)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = r.Text()
				_ = r.Cursor(time.Now())
			}
		}()
	}
	wg.Wait()
	r.Stop()
}

func TestCursorBlink(t *testing.T) {
	clk := newMock()
	r := New(clk)
	start := clk.Now()
	if !r.Cursor(start) {
		t.Error("caret hidden before start")
	}
	_ = r.Start("x", time.Millisecond, 0)

	tests := []struct {
		at   time.Duration
		want bool
	}{
		{0, true},
		{499 * time.Millisecond, true},
		{500 * time.Millisecond, false},
		{999 * time.Millisecond, false},
		{1000 * time.Millisecond, true},
	}
	for _, tt := range tests {
		if got := r.Cursor(start.Add(tt.at)); got != tt.want {
			t.Errorf("Cursor(+%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}
