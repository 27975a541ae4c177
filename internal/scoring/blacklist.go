package scoring

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/ayeshahabib/scamshield/internal/logging"
	"github.com/ayeshahabib/scamshield/internal/model"
	"github.com/ayeshahabib/scamshield/internal/utils"
)

// blacklistWeight is the score contribution of any blacklist hit.
const blacklistWeight = 50

const blacklistSchema = `
CREATE TABLE IF NOT EXISTS blocked_domains (
	domain TEXT PRIMARY KEY,
	reason TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS blocked_numbers (
	number TEXT PRIMARY KEY,
	reason TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS blocked_messages (
	pattern TEXT PRIMARY KEY,
	reason TEXT NOT NULL DEFAULT ''
);
`

// Blacklist checks submitted content against known-bad domains, numbers and
// message patterns kept in SQLite.
type Blacklist struct {
	db     *sql.DB
	dmp    *diffmatchpatch.DiffMatchPatch
	logger logging.Logger
}

// NewBlacklist prepares the blacklist tables on db.
func NewBlacklist(db *sql.DB, logger logging.Logger) (*Blacklist, error) {
	if logger == nil {
		logger = logging.NewStdoutLogger("blacklist")
	}
	if _, err := db.Exec(blacklistSchema); err != nil {
		return nil, fmt.Errorf("apply blacklist schema: %w", err)
	}

	dmp := diffmatchpatch.New()
	// Looser than the library default so reworded scam boilerplate still hits.
	dmp.MatchThreshold = 0.4

	return &Blacklist{db: db, dmp: dmp, logger: logger}, nil
}

// Seed inserts the starter blacklist rows. Idempotent.
func (b *Blacklist) Seed(ctx context.Context) error {
	seedDomains := map[string]string{
		"bit.ly":                    "URL shortener often used in scams",
		"scam-bank-verify.com":      "Phishing domain",
		"fake-lottery.net":          "Lottery scam domain",
		"urgent-account-verify.org": "Account verification scam",
		"claim-inheritance.biz":     "Inheritance scam domain",
		"irs-tax-urgent.com":        "Fake IRS domain",
	}
	seedNumbers := map[string]string{
		"555-0123":        "Known scam number",
		"1-800-SCAM-1":    "Fake support number",
		"+1-555-000-0000": "Common scam pattern",
		"123-456-7890":    "Test scam number",
	}
	seedMessages := map[string]string{
		"congratulations you have won": "Lottery scam pattern",
		"urgent account verification":  "Phishing pattern",
		"click here to claim":          "Malicious link pattern",
		"suspended within 24 hours":    "Urgency scam pattern",
		"final notice":                 "Fake authority pattern",
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for domain, reason := range seedDomains {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO blocked_domains (domain, reason) VALUES (?, ?)`, domain, reason); err != nil {
			return fmt.Errorf("seed domain %q: %w", domain, err)
		}
	}
	for number, reason := range seedNumbers {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO blocked_numbers (number, reason) VALUES (?, ?)`, number, reason); err != nil {
			return fmt.Errorf("seed number %q: %w", number, err)
		}
	}
	for pattern, reason := range seedMessages {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO blocked_messages (pattern, reason) VALUES (?, ?)`, pattern, reason); err != nil {
			return fmt.Errorf("seed message %q: %w", pattern, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	b.logger.Info("blacklist seeded",
		logging.Field{Key: "domains", Value: len(seedDomains)},
		logging.Field{Key: "numbers", Value: len(seedNumbers)},
		logging.Field{Key: "messages", Value: len(seedMessages)})
	return nil
}

// Check runs the blacklist layer for one submission and returns its score
// contribution and triggers. Lookup errors degrade to a zero contribution;
// scoring must not fail because the blacklist is unavailable.
func (b *Blacklist) Check(ctx context.Context, content string, scanType model.ScanType) (int, []string) {
	switch scanType {
	case model.ScanTypePhone:
		if b.numberBlocked(ctx, content) {
			return blacklistWeight, []string{"Blacklist: known_scam_number"}
		}
	case model.ScanTypeURL:
		if b.domainBlocked(ctx, content) {
			return blacklistWeight, []string{"Blacklist: known_scam_domain"}
		}
	default:
		if b.messageBlocked(ctx, content) {
			return blacklistWeight, []string{"Blacklist: known_scam_message"}
		}
	}
	return 0, nil
}

func (b *Blacklist) numberBlocked(ctx context.Context, content string) bool {
	squashed := utils.StripPhoneSeparators(content)

	rows, err := b.db.QueryContext(ctx, `SELECT number FROM blocked_numbers`)
	if err != nil {
		b.logger.Error("blacklist number lookup failed",
			logging.Field{Key: "error", Value: err.Error()})
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			continue
		}
		if number == content || utils.StripPhoneSeparators(number) == squashed {
			return true
		}
	}
	return false
}

func (b *Blacklist) domainBlocked(ctx context.Context, content string) bool {
	domain, err := utils.RegistrableDomain(content)
	if err != nil {
		return false
	}
	if isLegitimateDomain(domain) {
		return false
	}

	var n int
	err = b.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blocked_domains WHERE domain = ?`, domain).Scan(&n)
	if err != nil {
		b.logger.Error("blacklist domain lookup failed",
			logging.Field{Key: "error", Value: err.Error()})
		return false
	}
	return n > 0
}

func (b *Blacklist) messageBlocked(ctx context.Context, content string) bool {
	lower := strings.ToLower(content)

	rows, err := b.db.QueryContext(ctx, `SELECT pattern FROM blocked_messages LIMIT 100`)
	if err != nil {
		b.logger.Error("blacklist message lookup failed",
			logging.Field{Key: "error", Value: err.Error()})
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var pattern string
		if err := rows.Scan(&pattern); err != nil {
			continue
		}
		pattern = strings.ToLower(pattern)
		if strings.Contains(lower, pattern) {
			return true
		}
		// Bitap fuzzy match catches lightly reworded boilerplate. Patterns
		// longer than the bitap word size only get the substring check.
		if len(pattern) <= b.dmp.MatchMaxBits {
			if b.dmp.MatchMain(lower, pattern, 0) != -1 {
				return true
			}
		}
	}
	return false
}
