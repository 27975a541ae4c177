package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ayeshahabib/scamshield/internal/model"
	"github.com/ayeshahabib/scamshield/internal/testutil"
)

func fakeService(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/scan", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req model.ScanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		res := model.ScanResult{
			ID:        "scan-1",
			Content:   req.Content,
			ScanType:  model.ScanTypeText,
			RiskScore: 85,
			Label:     "🔴 Dangerous",
			Guidance:  "This content is highly likely to be a scam. Do not share personal information, click links, or send money.",
			Triggers:  []string{"Rule: lottery"},
			Timestamp: time.Now().UTC(),
		}
		if req.ScanType != "" {
			res.ScanType = req.ScanType
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	})
	mux.HandleFunc("/api/history", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		entries := []model.ScanResult{
			{ID: "b", Content: "newest entry", ScanType: model.ScanTypeText, RiskScore: 10},
			{ID: "a", Content: "older entry", ScanType: model.ScanTypeURL, RiskScore: 90},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(entries)
	})
	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.StatsResponse{
			TotalScans: 4, SafeScans: 2, SuspiciousScans: 1, DangerousScans: 1,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCommand(t *testing.T, srvURL string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(&testutil.DummyLogger{})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--server", srvURL))
	err := root.Execute()
	return out.String(), err
}

// ─── scan ──────────────────────────────────────────────────────────────

func TestScanCommand(t *testing.T) {
	t.Parallel()
	srv := fakeService(t)

	out, err := runCommand(t, srv.URL, "scan", "you", "won", "a", "prize")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !strings.Contains(out, "🔴 Dangerous (score 85/100)") {
		t.Errorf("output missing verdict line: %q", out)
	}
	if !strings.Contains(out, "Rule: lottery") {
		t.Errorf("output missing trigger: %q", out)
	}
}

func TestScanCommand_InvalidType(t *testing.T) {
	t.Parallel()
	srv := fakeService(t)

	_, err := runCommand(t, srv.URL, "scan", "hello", "--type", "email")
	if err == nil || !strings.Contains(err.Error(), "invalid --type") {
		t.Errorf("err = %v", err)
	}
}

func TestScanCommand_ServiceDown(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, "http://127.0.0.1:1", "scan", "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	// The transport detail must not leak into the user-facing message.
	if err.Error() != "unable to complete scan" {
		t.Errorf("err = %q, want generic failure message", err.Error())
	}
}

// ─── history ───────────────────────────────────────────────────────────

func TestHistoryCommand(t *testing.T) {
	t.Parallel()
	srv := fakeService(t)

	out, err := runCommand(t, srv.URL, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	newest := strings.Index(out, "newest entry")
	older := strings.Index(out, "older entry")
	if newest == -1 || older == -1 || newest > older {
		t.Errorf("history output order wrong: %q", out)
	}
}

// ─── stats ─────────────────────────────────────────────────────────────

func TestStatsCommand(t *testing.T) {
	t.Parallel()
	srv := fakeService(t)

	out, err := runCommand(t, srv.URL, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "Total scans: 4") {
		t.Errorf("output missing total: %q", out)
	}
	if !strings.Contains(out, "Safe:       2 (50%)") {
		t.Errorf("output missing safe share: %q", out)
	}
}

// ─── overview ──────────────────────────────────────────────────────────

func TestOverviewCommand(t *testing.T) {
	t.Parallel()
	srv := fakeService(t)

	out, err := runCommand(t, srv.URL, "overview")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if !strings.Contains(out, "Total scans: 4") || !strings.Contains(out, "newest entry") {
		t.Errorf("overview output incomplete: %q", out)
	}
}

func TestOverviewCommand_DegradesWhenServiceDown(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, "http://127.0.0.1:1", "overview")
	if err != nil {
		t.Fatalf("overview should not fail outright: %v", err)
	}
	if !strings.Contains(out, "Total scans: 0") {
		t.Errorf("expected zeroed stats: %q", out)
	}
	if !strings.Contains(out, "No scans yet.") {
		t.Errorf("expected empty history view: %q", out)
	}
}
