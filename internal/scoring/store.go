package scoring

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayeshahabib/scamshield/internal/logging"
	"github.com/ayeshahabib/scamshield/internal/model"
	"github.com/ayeshahabib/scamshield/internal/risk"
)

const scanHistorySchema = `
CREATE TABLE IF NOT EXISTS scan_history (
	id TEXT PRIMARY KEY,
	content TEXT NOT NULL,
	scan_type TEXT NOT NULL,
	risk_score INTEGER NOT NULL,
	label TEXT NOT NULL,
	guidance TEXT NOT NULL,
	triggers TEXT NOT NULL DEFAULT '[]',
	timestamp TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scan_history_timestamp ON scan_history (timestamp DESC);
`

// ScanStore persists settled scans in SQLite and backs the history and stats
// endpoints.
type ScanStore struct {
	db     *sql.DB
	logger logging.Logger
}

// NewScanStore applies the schema and returns a store over db.
func NewScanStore(db *sql.DB, logger logging.Logger) (*ScanStore, error) {
	if logger == nil {
		logger = logging.NewStdoutLogger("scanstore")
	}
	if _, err := db.Exec(scanHistorySchema); err != nil {
		return nil, fmt.Errorf("apply scan history schema: %w", err)
	}
	return &ScanStore{db: db, logger: logger}, nil
}

// Insert records one settled scan.
func (s *ScanStore) Insert(ctx context.Context, res *model.ScanResult) error {
	triggers, err := json.Marshal(res.Triggers)
	if err != nil {
		return fmt.Errorf("encode triggers: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scan_history (id, content, scan_type, risk_score, label, guidance, triggers, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.Content, string(res.ScanType), res.RiskScore, res.Label, res.Guidance,
		string(triggers), res.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}
	return nil
}

// Recent returns up to limit scans, newest-first.
func (s *ScanStore) Recent(ctx context.Context, limit int) ([]model.ScanResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, scan_type, risk_score, label, guidance, triggers, timestamp
		 FROM scan_history
		 ORDER BY timestamp DESC, rowid DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent scans: %w", err)
	}
	defer rows.Close()

	var out []model.ScanResult
	for rows.Next() {
		var (
			res      model.ScanResult
			scanType string
			triggers string
			ts       string
		)
		if err := rows.Scan(&res.ID, &res.Content, &scanType, &res.RiskScore, &res.Label, &res.Guidance, &triggers, &ts); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		res.ScanType = model.ScanType(scanType)
		if err := json.Unmarshal([]byte(triggers), &res.Triggers); err != nil {
			res.Triggers = []string{}
		}
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			res.Timestamp = parsed
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// TierCounts aggregates the whole history into per-tier counters. Tiers are
// re-derived from the stored numeric score, never from the stored label, so
// the counters stay consistent with the client classifier even if label text
// drifts across deployments.
func (s *ScanStore) TierCounts(ctx context.Context) (*model.StatsResponse, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT risk_score FROM scan_history`)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out model.StatsResponse
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		out.TotalScans++
		switch risk.Classify(score) {
		case risk.TierSafe:
			out.SafeScans++
		case risk.TierSuspicious:
			out.SuspiciousScans++
		case risk.TierDangerous:
			out.DangerousScans++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return &out, nil
}
