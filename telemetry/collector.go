package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	clicks    int
	drifts    int
	contacts  int
	wallSwaps int
}

// Sample is the scene state captured when a window is flushed.
type Sample struct {
	Bodies   int
	Sleeping int
	Hovered  int
	Escaped  int
	Kinetic  []float64 // per-body kinetic energy
	Speeds   []float64 // per-body linear speed
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordClick records a click impulse.
func (c *Collector) RecordClick() { c.clicks++ }

// RecordDrift records an initial drift impulse.
func (c *Collector) RecordDrift() { c.drifts++ }

// RecordContacts adds the contacts resolved by one physics step.
func (c *Collector) RecordContacts(n int) { c.contacts += n }

// RecordWallSwap records a containment rebuild.
func (c *Collector) RecordWallSwap() { c.wallSwaps++ }

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	mean, p50, p90 := Distribution(s.Kinetic)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Bodies:   s.Bodies,
		Sleeping: s.Sleeping,
		Hovered:  s.Hovered,
		Escaped:  s.Escaped,

		Clicks:    c.clicks,
		Drifts:    c.drifts,
		Contacts:  c.contacts,
		WallSwaps: c.wallSwaps,

		KineticMean: mean,
		KineticP50:  p50,
		KineticP90:  p90,
		MaxSpeed:    MaxOf(s.Speeds),
	}

	c.windowStartTick = currentTick
	c.clicks = 0
	c.drifts = 0
	c.contacts = 0
	c.wallSwaps = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
