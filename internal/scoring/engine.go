// Package scoring implements the rule and blacklist layers behind the
// /api/scan endpoint, plus the SQLite persistence for settled scans. Scores
// are additive across layers, capped at 100, and labeled with the same
// 30/70 thresholds the client classifier uses.
package scoring

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ayeshahabib/scamshield/internal/logging"
	"github.com/ayeshahabib/scamshield/internal/model"
	"github.com/ayeshahabib/scamshield/internal/risk"
	"github.com/ayeshahabib/scamshield/internal/utils"
)

// ErrEmptyContent rejects blank submissions before any layer runs.
var ErrEmptyContent = errors.New("scoring: content cannot be empty")

var guidanceByTier = map[risk.Tier]string{
	risk.TierSafe:       "This content appears safe. No significant risk indicators detected.",
	risk.TierSuspicious: "This content shows some warning signs. Exercise caution and verify authenticity before taking any action.",
	risk.TierDangerous:  "This content is highly likely to be a scam. Do not share personal information, click links, or send money.",
}

var labelByTier = map[risk.Tier]string{
	risk.TierSafe:       "🟢 Safe",
	risk.TierSuspicious: "🟡 Suspicious",
	risk.TierDangerous:  "🔴 Dangerous",
}

// Engine combines the detection layers into one scored verdict.
type Engine struct {
	blacklist *Blacklist
	logger    logging.Logger
	now       func() time.Time
}

// NewEngine creates an Engine. blacklist may be nil; the rule layer then
// runs alone.
func NewEngine(blacklist *Blacklist, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewStdoutLogger("scoring")
	}
	return &Engine{
		blacklist: blacklist,
		logger:    logger.With(logging.Field{Key: "component", Value: "scoring"}),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Score evaluates one submission. scanType is auto-detected when empty.
func (e *Engine) Score(ctx context.Context, content string, scanType model.ScanType) (*model.ScanResult, error) {
	content = utils.NormalizeContent(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	if scanType == "" {
		scanType = DetectScanType(content)
	}

	ruleScore, triggers := ApplyRules(content, scanType)

	blScore := 0
	if e.blacklist != nil {
		var blTriggers []string
		blScore, blTriggers = e.blacklist.Check(ctx, content, scanType)
		triggers = append(triggers, blTriggers...)
	}

	total := risk.Clamp(ruleScore + blScore)
	tier := risk.Classify(total)
	if triggers == nil {
		triggers = []string{}
	}

	result := &model.ScanResult{
		ID:        uuid.NewString(),
		Content:   content,
		ScanType:  scanType,
		RiskScore: total,
		Label:     labelByTier[tier],
		Guidance:  guidanceByTier[tier],
		Triggers:  triggers,
		Timestamp: e.now(),
	}

	e.logger.Info("content scored",
		logging.Field{Key: "scan_id", Value: result.ID},
		logging.Field{Key: "scan_type", Value: string(scanType)},
		logging.Field{Key: "risk_score", Value: total},
		logging.Field{Key: "tier", Value: tier.String()},
		logging.Field{Key: "triggers", Value: len(triggers)})

	return result, nil
}
