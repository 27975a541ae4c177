package scoring

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ayeshahabib/scamshield/internal/model"
	"github.com/ayeshahabib/scamshield/internal/utils"
)

// ruleCategory is one family of scam indicators. At most one trigger fires
// per category regardless of how many of its patterns match.
type ruleCategory struct {
	name     string
	weight   int
	patterns []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// Categories are evaluated in a fixed order so trigger emission is
// deterministic. Patterns run against lower-cased content.
var ruleCategories = []ruleCategory{
	{
		name:   "urgency",
		weight: 30,
		patterns: compileAll(
			`urgent|immediate|expire|expires|within \d+ hours?`,
			`act now|limited time|hurry|final notice`,
			`suspend|blocked|frozen|terminate`,
		),
	},
	{
		name:   "lottery",
		weight: 35,
		patterns: compileAll(
			`congratulations|winner|won.*prize|lottery|jackpot`,
			`claim.*\$[\d,]+|claim.*prize|claim.*reward`,
			`inheritance|beneficiary|million dollars?`,
			`you.*won.*\$|selected.*winner`,
		),
	},
	{
		name:   "otp_phishing",
		weight: 25,
		patterns: compileAll(
			`verification code|otp|one.time.password`,
			`code.*\d{4,6}|pin.*\d{4,6}`,
			`authenticate|verify.*account`,
		),
	},
	{
		name:   "financial",
		weight: 35,
		patterns: compileAll(
			`bank.*details|credit.*card|account.*number`,
			`ssn|social.*security|tax.*refund`,
			`bitcoin|crypto|investment.*opportunity`,
		),
	},
	{
		name:   "authority",
		weight: 30,
		patterns: compileAll(
			`irs|fbi|police|government|court`,
			`legal.*action|warrant|arrest`,
			`immigration|deportation|fine`,
		),
	},
	{
		name:   "suspicious_links",
		weight: 25,
		patterns: compileAll(
			`bit\.ly|tinyurl|t\.co|goo\.gl`,
			`click.*here|download.*now|open.*link`,
			`http.*suspicious|shortened.*url`,
		),
	},
}

// ruleScoreCap bounds the rule layer so the blacklist layer can still move
// a verdict across the dangerous threshold.
const ruleScoreCap = 70

var (
	phoneShapeRe = regexp.MustCompile(`^[+]?[1-9]?[-. ]?\(?[0-9]{3}\)?[-. ]?[0-9]{3}[-. ]?[0-9]{4,6}$`)
	urlShapeRe   = regexp.MustCompile(`(?i)^https?://|^www\.|\.com$|\.org$|\.net$`)
	digitsOnlyRe = regexp.MustCompile(`^\+?[0-9]+$`)

	scamNumberRes = compileAll(
		`^(000|111|222|333|444|666|777|888|999)\d{3}\d{4}$`,
		`^\+1900\d{3}\d{4}$`,
		`^\d{4,6}$`,
		`^\d{11,}$`,
	)

	suspiciousURLRes = compileAll(
		`^https?://[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}`,
		`[a-z0-9]{20,}\.`,
		`[0-9]{10,}\.`,
	)
)

// legitimateDomains suppresses false positives for well-known origins.
var legitimateDomains = []string{
	"google.com", "microsoft.com", "apple.com", "amazon.com",
	"facebook.com", "youtube.com", "wikipedia.org", "github.com",
	"linkedin.com", "twitter.com", "instagram.com", "reddit.com",
}

func isLegitimateDomain(s string) bool {
	s = strings.ToLower(s)
	for _, d := range legitimateDomains {
		if strings.Contains(s, d) {
			return true
		}
	}
	return false
}

// DetectScanType auto-detects whether content is a phone number, URL or
// free-form text.
func DetectScanType(content string) model.ScanType {
	content = strings.TrimSpace(content)

	if phoneShapeRe.MatchString(content) || digitsOnlyRe.MatchString(utils.StripPhoneSeparators(content)) {
		return model.ScanTypePhone
	}
	if urlShapeRe.MatchString(content) {
		return model.ScanTypeURL
	}
	return model.ScanTypeText
}

// ApplyRules runs the rule layer and returns its score contribution plus the
// triggers that fired, in category order. The score is capped at 70.
func ApplyRules(content string, scanType model.ScanType) (int, []string) {
	score := 0
	var triggers []string
	lower := strings.ToLower(content)

	for _, cat := range ruleCategories {
		for _, re := range cat.patterns {
			if re.MatchString(lower) {
				score += cat.weight
				triggers = append(triggers, "Rule: "+cat.name)
				break
			}
		}
	}

	switch scanType {
	case model.ScanTypePhone:
		squashed := utils.StripPhoneSeparators(content)
		for _, re := range scamNumberRes {
			if re.MatchString(squashed) {
				score += 20
				triggers = append(triggers, "Rule: suspicious_number_pattern")
				break
			}
		}
	case model.ScanTypeURL:
		clean := strings.ToLower(strings.TrimSpace(content))
		if !isLegitimateDomain(clean) {
			for _, re := range suspiciousURLRes {
				if re.MatchString(clean) {
					score += 25
					triggers = append(triggers, "Rule: suspicious_url_pattern")
					break
				}
			}
		}
	}

	if n, ok := deceptiveLinkCount(content); ok && n > 0 {
		score += 25
		triggers = append(triggers, "Rule: deceptive_link")
	}

	if score > ruleScoreCap {
		score = ruleScoreCap
	}
	return score, triggers
}

// deceptiveLinkCount parses HTML-looking content and counts anchors whose
// visible text advertises a different registrable domain than their href, a
// classic phishing tell in pasted emails. The bool is false when the content
// is not HTML-like or fails to parse.
func deceptiveLinkCount(content string) (int, bool) {
	if !strings.Contains(strings.ToLower(content), "<a") {
		return 0, false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return 0, false
	}

	count := 0
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := strings.TrimSpace(sel.Text())
		if text == "" || !urlShapeRe.MatchString(text) {
			return
		}
		hrefDomain, err1 := utils.RegistrableDomain(href)
		textDomain, err2 := utils.RegistrableDomain(text)
		if err1 != nil || err2 != nil {
			return
		}
		if hrefDomain != textDomain {
			count++
		}
	})
	return count, true
}
