package demo

import (
	"math/rand"
	"testing"
	"time"

	"github.com/bitfantasy/orderpilot/internal/agent/audit"
	"github.com/bitfantasy/orderpilot/internal/agent/entity"
	"github.com/bitfantasy/orderpilot/internal/agent/workflow"
	"go.uber.org/zap"
)

func newTestRunner(seed int64, stepDelay time.Duration) (*workflow.Engine, *Runner) {
	rng := rand.New(rand.NewSource(seed))
	engine := workflow.NewEngine(zap.NewNop(), audit.NewRecorder(), rng, stepDelay)
	return engine, NewRunner(zap.NewNop(), engine, stepDelay)
}

func waitDone(t *testing.T, r *Runner, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !r.Running() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("demo did not finish in time")
}

func hasAuditAction(engine *workflow.Engine, action string) bool {
	for _, e := range engine.Recorder().Entries() {
		if e.Action == action {
			return true
		}
	}
	return false
}

func TestRunnerCompletesWorkflow(t *testing.T) {
	engine, runner := newTestRunner(42, 5*time.Millisecond)

	if !runner.Run() {
		t.Fatal("run should start")
	}
	waitDone(t, runner, 5*time.Second)

	snap := engine.Snapshot()
	if snap.Stage != entity.StageComplete {
		t.Fatalf("expected complete stage, got %s", snap.Stage)
	}
	if len(snap.Invoices) == 0 || snap.Invoices[0].Status != entity.InvoiceStatusPaid {
		t.Error("demo should end with a paid invoice")
	}
	if !hasAuditAction(engine, "Demo Started") {
		t.Error("missing Demo Started audit entry")
	}
	if !hasAuditAction(engine, "Demo Complete") {
		t.Error("missing Demo Complete audit entry")
	}
	// 演示固定选择第三家货代
	for _, q := range snap.ForwarderQuotes {
		if q.ID == "FQ-003" && q.Status != entity.QuoteStatusSelected {
			t.Errorf("demo should select FQ-003, got status %s", q.Status)
		}
	}
}

func TestRunnerRejectsReentry(t *testing.T) {
	_, runner := newTestRunner(1, 20*time.Millisecond)

	if !runner.Run() {
		t.Fatal("first run should start")
	}
	if runner.Run() {
		t.Error("concurrent run should be rejected")
	}
	runner.Stop()
	waitDone(t, runner, 5*time.Second)
}

func TestRunnerStopLeavesPartialState(t *testing.T) {
	engine, runner := newTestRunner(7, 50*time.Millisecond)

	if !runner.Run() {
		t.Fatal("run should start")
	}
	runner.Stop()
	waitDone(t, runner, 10*time.Second)

	if hasAuditAction(engine, "Demo Complete") {
		t.Error("stopped demo must not record Demo Complete")
	}
	if !hasAuditAction(engine, "Demo Started") {
		t.Error("missing Demo Started audit entry")
	}
	if engine.Stage() == entity.StageComplete {
		t.Error("stopped demo should not reach the complete stage")
	}

	// 停止后可以重新启动
	if !runner.Run() {
		t.Error("runner should accept a new run after stopping")
	}
	runner.Stop()
	waitDone(t, runner, 10*time.Second)
}
