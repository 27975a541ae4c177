// Package utils holds small content-normalization helpers shared by the
// scoring layers and the client display code.
package utils

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/publicsuffix"
)

// NormalizeContent trims surrounding whitespace. Submitted content is never
// otherwise rewritten; the raw text is what gets scored and echoed back.
func NormalizeContent(s string) string {
	return strings.TrimSpace(s)
}

// StripPhoneSeparators removes the separators people type into phone numbers
// so blacklist comparison works on bare digits.
func StripPhoneSeparators(s string) string {
	r := strings.NewReplacer("-", "", " ", "", "(", "", ")", "", ".", "")
	return r.Replace(strings.TrimSpace(s))
}

// RegistrableDomain reduces a raw URL (or bare host) to its eTLD+1, e.g.
// "https://login.scam-bank-verify.com/x" -> "scam-bank-verify.com".
func RegistrableDomain(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", fmt.Errorf("no host in %q", raw)
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// IP addresses and single-label hosts have no registrable domain;
		// fall back to the host itself for comparison.
		return host, nil
	}
	return domain, nil
}

// TruncateForDisplay shortens long content for list views, appending an
// ellipsis. Safe on multi-byte text.
func TruncateForDisplay(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}
