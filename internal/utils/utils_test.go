package utils_test

import (
	"testing"

	"github.com/ayeshahabib/scamshield/internal/utils"
)

func TestNormalizeContent(t *testing.T) {
	t.Parallel()
	if got := utils.NormalizeContent("  hello \n"); got != "hello" {
		t.Errorf("NormalizeContent = %q, want %q", got, "hello")
	}
}

func TestStripPhoneSeparators(t *testing.T) {
	t.Parallel()
	cases := []struct{ in, want string }{
		{"555-0123", "5550123"},
		{"(555) 012-3456", "5550123456"},
		{"+1.555.000.0000", "+15550000000"},
	}
	for _, tc := range cases {
		if got := utils.StripPhoneSeparators(tc.in); got != tc.want {
			t.Errorf("StripPhoneSeparators(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRegistrableDomain(t *testing.T) {
	t.Parallel()
	cases := []struct{ in, want string }{
		{"https://login.scam-bank-verify.com/verify", "scam-bank-verify.com"},
		{"http://bit.ly/xyz", "bit.ly"},
		{"www.google.com", "google.com"},
		{"sub.deep.example.co.uk", "example.co.uk"},
	}
	for _, tc := range cases {
		got, err := utils.RegistrableDomain(tc.in)
		if err != nil {
			t.Errorf("RegistrableDomain(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("RegistrableDomain(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRegistrableDomain_Errors(t *testing.T) {
	t.Parallel()
	if _, err := utils.RegistrableDomain("   "); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestTruncateForDisplay(t *testing.T) {
	t.Parallel()
	if got := utils.TruncateForDisplay("short", 10); got != "short" {
		t.Errorf("got %q, want unchanged", got)
	}
	if got := utils.TruncateForDisplay("a very long message indeed", 6); got != "a very…" {
		t.Errorf("got %q, want %q", got, "a very…")
	}
}
