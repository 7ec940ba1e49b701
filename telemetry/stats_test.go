package telemetry

import (
	"math"
	"testing"
)

func TestDistribution(t *testing.T) {
	tests := []struct {
		name           string
		values         []float64
		mean, p50, p90 float64
	}{
		{"empty slice", []float64{}, 0, 0, 0},
		{"single element", []float64{5}, 5, 5, 5},
		{"odd", []float64{1, 2, 3, 4, 5}, 3, 3, 5},
		{"unsorted", []float64{5, 1, 4, 2, 3}, 3, 3, 5},
		{"ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 5.5, 5, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p50, p90 := Distribution(tt.values)
			if math.Abs(mean-tt.mean) > 0.001 {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if math.Abs(p50-tt.p50) > 0.001 {
				t.Errorf("p50 = %v, want %v", p50, tt.p50)
			}
			if math.Abs(p90-tt.p90) > 0.001 {
				t.Errorf("p90 = %v, want %v", p90, tt.p90)
			}
		})
	}
}

func TestDistributionDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Distribution(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestMaxOf(t *testing.T) {
	if got := MaxOf(nil); got != 0 {
		t.Errorf("MaxOf(nil) = %v", got)
	}
	if got := MaxOf([]float64{0.5, 2.5, 1}); got != 2.5 {
		t.Errorf("MaxOf = %v, want 2.5", got)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)
	if c.WindowDurationTicks() != 60 {
		t.Fatalf("window ticks = %d, want 60", c.WindowDurationTicks())
	}

	c.RecordDrift()
	c.RecordDrift()
	c.RecordClick()
	c.RecordContacts(3)
	c.RecordContacts(4)
	c.RecordWallSwap()

	if c.ShouldFlush(59) {
		t.Error("ShouldFlush(59) = true")
	}
	if !c.ShouldFlush(60) {
		t.Fatal("ShouldFlush(60) = false")
	}

	stats := c.Flush(60, Sample{
		Bodies:  3,
		Hovered: 1,
		Kinetic: []float64{1, 2, 3},
		Speeds:  []float64{0.5, 4, 1},
	})
	if stats.Drifts != 2 || stats.Clicks != 1 || stats.Contacts != 7 || stats.WallSwaps != 1 {
		t.Errorf("event counts = %+v", stats)
	}
	if stats.Bodies != 3 || stats.Hovered != 1 {
		t.Errorf("scene counts = %+v", stats)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-6 {
		t.Errorf("sim time = %v, want 1", stats.SimTimeSec)
	}
	if stats.KineticMean != 2 || stats.MaxSpeed != 4 {
		t.Errorf("kinetic mean=%v max speed=%v", stats.KineticMean, stats.MaxSpeed)
	}

	next := c.Flush(120, Sample{})
	if next.Drifts != 0 || next.Clicks != 0 || next.Contacts != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 60 {
		t.Errorf("window start = %d, want 60", next.WindowStartTick)
	}
}
