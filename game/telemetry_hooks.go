package game

import (
	"log/slog"

	"github.com/pthm-cable/antigravity/telemetry"
)

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sample())
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "stats", perfStats)
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sample captures the scene state for a stats window.
func (g *Game) sample() telemetry.Sample {
	s := telemetry.Sample{Escaped: g.Escaped()}
	query := g.objectFilter.Query()
	for query.Next() {
		_, shape, body, motion := query.Get()
		s.Bodies++
		if motion.Sleeping {
			s.Sleeping++
		}
		if body.Ctrl != nil && body.Ctrl.Hovered() {
			s.Hovered++
		}
		mass := float32(1)
		if shape.Archetype != nil {
			mass = shape.Archetype.Mass(float32(g.cfg.Body.Density))
		}
		s.Kinetic = append(s.Kinetic, float64(motion.KineticEnergy(mass)))
		s.Speeds = append(s.Speeds, float64(motion.LinearVelocity.Len()))
	}
	return s
}
