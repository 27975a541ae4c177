package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ayeshahabib/scamshield/internal/model"
	"github.com/ayeshahabib/scamshield/internal/risk"
	"github.com/ayeshahabib/scamshield/internal/stats"
	"github.com/ayeshahabib/scamshield/internal/utils"
)

// contentWidth caps content echo in list views.
const contentWidth = 60

func writeResult(w io.Writer, res *model.ScanResult) {
	if res == nil {
		return
	}
	tier := risk.Classify(res.RiskScore)
	accent := risk.AccentFor(tier)

	fmt.Fprintf(w, "%s %s (score %d/100)\n", accent.Icon, titleCase(tier.String()), res.RiskScore)
	fmt.Fprintf(w, "%s\n", res.Guidance)
	if len(res.Triggers) > 0 {
		fmt.Fprintln(w, "Indicators:")
		for _, tr := range res.Triggers {
			fmt.Fprintf(w, "  - %s\n", tr)
		}
	}
}

func writeHistory(w io.Writer, entries []model.ScanResult) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No scans yet.")
		return
	}
	for _, e := range entries {
		tier := risk.Classify(e.RiskScore)
		accent := risk.AccentFor(tier)
		fmt.Fprintf(w, "%s %3d  %-5s  %s\n",
			accent.Icon, e.RiskScore, string(e.ScanType),
			utils.TruncateForDisplay(e.Content, contentWidth))
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeStats(w io.Writer, snap stats.Snapshot) {
	fmt.Fprintf(w, "Total scans: %d\n", snap.Total)
	fmt.Fprintf(w, "  🟢 Safe:       %d (%d%%)\n", snap.Safe, snap.PercentFor(risk.TierSafe))
	fmt.Fprintf(w, "  🟡 Suspicious: %d (%d%%)\n", snap.Suspicious, snap.PercentFor(risk.TierSuspicious))
	fmt.Fprintf(w, "  🔴 Dangerous:  %d (%d%%)\n", snap.Dangerous, snap.PercentFor(risk.TierDangerous))
}
