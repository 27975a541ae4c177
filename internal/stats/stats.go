// Package stats derives aggregate counts from settled scans. Snapshots are
// recomputed on every read rather than cached; the cost is a single pass over
// at most ten history entries or one remote payload.
package stats

import (
	"math"

	"github.com/ayeshahabib/scamshield/internal/model"
	"github.com/ayeshahabib/scamshield/internal/risk"
)

// Snapshot is a derived, point-in-time view of tier counts.
type Snapshot struct {
	Total      int
	Safe       int
	Suspicious int
	Dangerous  int
}

// Compute buckets every entry by the tier re-derived from its numeric score.
// A stored label or stale tier field is never trusted.
func Compute(entries []model.ScanResult) Snapshot {
	snap := Snapshot{Total: len(entries)}
	for _, e := range entries {
		switch risk.Classify(e.RiskScore) {
		case risk.TierSafe:
			snap.Safe++
		case risk.TierSuspicious:
			snap.Suspicious++
		case risk.TierDangerous:
			snap.Dangerous++
		}
	}
	return snap
}

// FromRemote adapts the /api/stats payload into a Snapshot.
func FromRemote(w model.StatsResponse) Snapshot {
	return Snapshot{
		Total:      w.TotalScans,
		Safe:       w.SafeScans,
		Suspicious: w.SuspiciousScans,
		Dangerous:  w.DangerousScans,
	}
}

// Percent returns round(count/total*100), with an empty total
// short-circuiting to 0 instead of dividing by zero.
func Percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// PercentFor is a convenience for rendering one tier's share.
func (s Snapshot) PercentFor(t risk.Tier) int {
	switch t {
	case risk.TierSafe:
		return Percent(s.Safe, s.Total)
	case risk.TierSuspicious:
		return Percent(s.Suspicious, s.Total)
	case risk.TierDangerous:
		return Percent(s.Dangerous, s.Total)
	default:
		return 0
	}
}
