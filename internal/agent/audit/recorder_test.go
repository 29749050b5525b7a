package audit

import (
	"fmt"
	"sync"
	"testing"

	"github.com/bitfantasy/orderpilot/internal/agent/entity"
)

func TestRecordSequenceAndOrder(t *testing.T) {
	r := NewRecorder()

	first := r.Record("Forecasting", "Forecast Generated", "AI Engine", "details", entity.SeverityInfo)
	second := r.Record("PR/PO Service", "Draft PR Created", "AI Engine", "details", entity.SeverityInfo)

	if first.ID != "AUD-0001" {
		t.Errorf("expected AUD-0001, got %s", first.ID)
	}
	if second.ID != "AUD-0002" {
		t.Errorf("expected AUD-0002, got %s", second.ID)
	}

	entries := r.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// 最近优先
	if entries[0].ID != "AUD-0002" || entries[1].ID != "AUD-0001" {
		t.Errorf("entries not in most-recent-first order: %s, %s", entries[0].ID, entries[1].ID)
	}
}

func TestRecordDefaultSeverity(t *testing.T) {
	r := NewRecorder()
	entry := r.Record("System", "Test", "System", "details", "")
	if entry.Severity != entity.SeverityInfo {
		t.Errorf("empty severity should default to info, got %s", entry.Severity)
	}
}

func TestRecordConcurrent(t *testing.T) {
	r := NewRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				r.Record("System", "Concurrent", "System", fmt.Sprintf("worker %d", n), entity.SeverityInfo)
			}
		}(i)
	}
	wg.Wait()

	if r.Count() != 200 {
		t.Fatalf("expected 200 entries, got %d", r.Count())
	}

	seen := make(map[string]bool)
	for _, e := range r.Entries() {
		if seen[e.ID] {
			t.Fatalf("duplicate audit ID: %s", e.ID)
		}
		seen[e.ID] = true
	}
}
