package history_test

import (
	"fmt"
	"testing"

	"github.com/ayeshahabib/scamshield/internal/history"
	"github.com/ayeshahabib/scamshield/internal/model"
)

func entry(i int) model.ScanResult {
	return model.ScanResult{
		ID:       fmt.Sprintf("scan-%d", i),
		Content:  fmt.Sprintf("content %d", i),
		ScanType: model.ScanTypeText,
		Triggers: []string{"Rule: urgency"},
	}
}

// ─── Local store ───────────────────────────────────────────────────────

func TestRecord_NewestFirst(t *testing.T) {
	t.Parallel()
	s := history.NewLocalStore()
	s.Record(entry(1))
	s.Record(entry(2))
	s.Record(entry(3))

	all := s.All()
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	for i, wantID := range []string{"scan-3", "scan-2", "scan-1"} {
		if all[i].ID != wantID {
			t.Errorf("all[%d].ID = %q, want %q", i, all[i].ID, wantID)
		}
	}
}

func TestRecord_EvictsBeyondCapacity(t *testing.T) {
	t.Parallel()
	s := history.NewLocalStore()
	for i := 1; i <= 11; i++ {
		s.Record(entry(i))
	}

	all := s.All()
	if len(all) != history.Capacity {
		t.Fatalf("len = %d, want %d", len(all), history.Capacity)
	}
	if all[0].ID != "scan-11" {
		t.Errorf("head = %q, want scan-11", all[0].ID)
	}
	if all[len(all)-1].ID != "scan-2" {
		t.Errorf("tail = %q, want scan-2", all[len(all)-1].ID)
	}
	for _, e := range all {
		if e.ID == "scan-1" {
			t.Error("oldest entry scan-1 should have been evicted")
		}
	}
}

func TestAll_ReturnsDetachedCopy(t *testing.T) {
	t.Parallel()
	s := history.NewLocalStore()
	s.Record(entry(1))

	snap := s.All()
	snap[0].ID = "mutated"
	snap[0].Triggers[0] = "mutated"

	again := s.All()
	if again[0].ID != "scan-1" {
		t.Errorf("store mutated through snapshot: ID = %q", again[0].ID)
	}
	if again[0].Triggers[0] != "Rule: urgency" {
		t.Errorf("trigger slice shared with snapshot: %q", again[0].Triggers[0])
	}
}

func TestHydrate_NoOpOnLocalStore(t *testing.T) {
	t.Parallel()
	s := history.NewLocalStore()
	s.Record(entry(1))
	s.Hydrate([]model.ScanResult{entry(2), entry(3)})

	if got := s.Len(); got != 1 {
		t.Errorf("Len = %d after Hydrate on local store, want 1", got)
	}
}

// ─── Remote-backed store ───────────────────────────────────────────────

func TestRemoteStore_RecordIsNoOp(t *testing.T) {
	t.Parallel()
	s := history.NewRemoteStore()
	s.Record(entry(1))
	if got := s.Len(); got != 0 {
		t.Errorf("Len = %d after Record on remote store, want 0", got)
	}
}

func TestRemoteStore_HydrateReplacesAndTruncates(t *testing.T) {
	t.Parallel()
	s := history.NewRemoteStore()
	s.Hydrate([]model.ScanResult{entry(1)})

	var fetched []model.ScanResult
	for i := 1; i <= 12; i++ {
		fetched = append(fetched, entry(100+i))
	}
	s.Hydrate(fetched)

	all := s.All()
	if len(all) != history.Capacity {
		t.Fatalf("len = %d, want %d", len(all), history.Capacity)
	}
	if all[0].ID != "scan-101" {
		t.Errorf("head = %q, want scan-101 (fetch order preserved)", all[0].ID)
	}
}
