package rng

import (
	"math"
	"testing"
)

func TestSequenceCycles(t *testing.T) {
	s := NewSequence(0.1, 0.2, 0.3)
	want := []float64{0.1, 0.2, 0.3, 0.1, 0.2}
	for i, w := range want {
		if got := s.Float64(); got != w {
			t.Errorf("draw %d = %v, want %v", i, got, w)
		}
	}
	if s.Calls() != len(want) {
		t.Errorf("Calls() = %d, want %d", s.Calls(), len(want))
	}
}

func TestEmptySequence(t *testing.T) {
	s := NewSequence()
	if got := s.Float64(); got != 0.5 {
		t.Errorf("empty sequence = %v, want 0.5", got)
	}
}

func TestCentered(t *testing.T) {
	tests := []struct {
		name  string
		draw  float64
		scale float64
		want  float64
	}{
		{"low", 0, 2, -1},
		{"mid", 0.5, 2, 0},
		{"high", 0.75, 10, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Centered(NewSequence(tt.draw), tt.scale)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Centered(%v, %v) = %v, want %v", tt.draw, tt.scale, got, tt.want)
			}
		})
	}
}

func TestRandRange(t *testing.T) {
	r := New(42)
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("value %v out of [0,1)", v)
		}
	}
}

func TestRandSeeded(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed produced different values")
		}
	}
}
