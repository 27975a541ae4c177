package model

import "time"

// ScanType classifies what kind of content was submitted. It is assigned by
// the scoring service (auto-detected when the caller does not provide one)
// and treated as opaque by the client workflow.
type ScanType string

const (
	ScanTypeText  ScanType = "text"
	ScanTypePhone ScanType = "phone"
	ScanTypeURL   ScanType = "url"
)

// ScanRequest is the body of POST /api/scan.
type ScanRequest struct {
	// Content is the text, phone number or URL to evaluate. Must be
	// non-empty after trimming.
	Content string `json:"content"`

	// ScanType is optional; the scoring service auto-detects it when empty.
	ScanType ScanType `json:"scan_type,omitempty"`
}

// ScanResult is the canonical settled scan record, produced by the scoring
// service and consumed by the client. The numeric RiskScore is authoritative
// for tier derivation; Label is advisory display text only.
type ScanResult struct {
	// ID is the unique identifier assigned by the scoring service.
	ID string `json:"id,omitempty"`

	// Content echoes the scanned input (possibly truncated for display).
	Content string `json:"content"`

	// ScanType classifies the scanned content.
	ScanType ScanType `json:"scan_type"`

	// RiskScore is the scam risk in [0,100]. Values outside the range are
	// clamped before classification.
	RiskScore int `json:"risk_score"`

	// Label is the server's human-readable verdict (e.g. "🟢 Safe").
	Label string `json:"label"`

	// Guidance is human-readable advice for the user.
	Guidance string `json:"guidance"`

	// Triggers lists the detection rules that fired, in server emission
	// order, not deduplicated.
	Triggers []string `json:"triggers"`

	// Timestamp is when the scan settled. Stamped client-side when the
	// server payload omits it.
	Timestamp time.Time `json:"timestamp"`
}

// Copy returns a deep copy of the result so callers cannot mutate shared
// trigger slices through a snapshot.
func (r ScanResult) Copy() ScanResult {
	cp := r
	if r.Triggers != nil {
		cp.Triggers = append([]string(nil), r.Triggers...)
	}
	return cp
}

// StatsResponse mirrors GET /api/stats.
type StatsResponse struct {
	TotalScans      int `json:"total_scans"`
	SafeScans       int `json:"safe_scans"`
	SuspiciousScans int `json:"suspicious_scans"`
	DangerousScans  int `json:"dangerous_scans"`
}
