package mockgen

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/bitfantasy/orderpilot/internal/agent/catalog"
)

func TestForecastRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sku := catalog.SKUs[0]

	for i := 0; i < 100; i++ {
		result := Forecast(rng, sku, "March 2026", 100000)

		if result.SKUID != sku.ID {
			t.Fatalf("expected SKU ID %s, got %s", sku.ID, result.SKUID)
		}
		if result.Confidence < 70 || result.Confidence > 95 {
			t.Errorf("confidence %d out of range [70, 95]", result.Confidence)
		}
		if result.ReorderQty < 0 {
			t.Errorf("reorder qty %d must not be negative", result.ReorderQty)
		}
		// 需求乘数范围[0.8, 1.4)
		min := int(float64(sku.ReorderPoint) * 0.8)
		max := int(float64(sku.ReorderPoint)*1.4) + 1
		if result.PredictedDemand < min || result.PredictedDemand > max {
			t.Errorf("predicted demand %d out of range [%d, %d]", result.PredictedDemand, min, max)
		}
		wantCost := float64(result.ReorderQty) * sku.LastPrice
		if result.EstimatedCost != wantCost {
			t.Errorf("estimated cost %.2f, want %.2f", result.EstimatedCost, wantCost)
		}
	}
}

func TestForecastOverBudgetRationale(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sku := catalog.SKUs[1] // 单价高，小预算必然超支

	result := Forecast(rng, sku, "March 2026", 100)
	if result.EstimatedCost <= 100 {
		t.Skip("forecast happened to fit the budget")
	}
	if !strings.Contains(result.Rationale, "partial order") {
		t.Errorf("over-budget rationale should recommend a partial order, got: %s", result.Rationale)
	}
}

func TestForecastWithinBudgetRationale(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sku := catalog.SKUs[0]

	result := Forecast(rng, sku, "March 2026", 10000000)
	if !strings.Contains(result.Rationale, "Recommend reorder") {
		t.Errorf("within-budget rationale should recommend reorder, got: %s", result.Rationale)
	}
}

func TestNewIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^PR-[0-9A-Z]+$`)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewPRID()
		if !pattern.MatchString(id) {
			t.Fatalf("unexpected ID format: %s", id)
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestEmailThreadDisclosure(t *testing.T) {
	email := EmailThread("Test", "a@x.com", "b@y.com", "body", "confirmation", false)
	if !email.AIDisclosure {
		t.Error("agent emails must always carry the AI disclosure flag")
	}
	if !strings.HasPrefix(email.ID, "EM-") {
		t.Errorf("unexpected email ID: %s", email.ID)
	}
}

func TestSupplierScores(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	scores := SupplierScores(rng)

	if len(scores) != 5 {
		t.Fatalf("expected 5 score metrics, got %d", len(scores))
	}
	var totalWeight float64
	for _, s := range scores {
		totalWeight += s.Weight
		if s.Score < 60 || s.Score > 100 {
			t.Errorf("score %.1f for %s out of range [60, 100]", s.Score, s.Metric)
		}
	}
	if totalWeight < 0.999 || totalWeight > 1.001 {
		t.Errorf("weights should sum to 1.0, got %.3f", totalWeight)
	}
}

func TestKPIRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 50; i++ {
		k := KPIs(rng)
		if k.ForecastAccuracy < 82 || k.ForecastAccuracy > 94 {
			t.Errorf("forecast accuracy %d out of range", k.ForecastAccuracy)
		}
		if k.AvgCycleTime < 8 || k.AvgCycleTime > 15 {
			t.Errorf("avg cycle time %d out of range", k.AvgCycleTime)
		}
		if k.CostSavings < 12400 || k.CostSavings > 20400 {
			t.Errorf("cost savings %d out of range", k.CostSavings)
		}
		if k.POsPending < 0 || k.POsPending > 5 {
			t.Errorf("pending POs %d out of range", k.POsPending)
		}
	}
}

func TestTrackingNoFormat(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pattern := regexp.MustCompile(`^TRK-[0-9A-Z]{6}$`)
	for i := 0; i < 20; i++ {
		no := TrackingNo(rng)
		if !pattern.MatchString(no) {
			t.Fatalf("unexpected tracking number format: %s", no)
		}
	}
}
