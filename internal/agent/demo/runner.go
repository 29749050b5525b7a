// Package demo 驱动端到端演示：按固定剧本依次触发全部流程转换。
package demo

import (
	"sync/atomic"
	"time"

	"github.com/bitfantasy/orderpilot/internal/agent/entity"
	"github.com/bitfantasy/orderpilot/internal/agent/workflow"
	"go.uber.org/zap"
)

// 演示剧本的默认参数，与手动操作的表单默认值一致
const (
	demoSKUID     = "SKU-001"
	demoMonth     = "March 2026"
	demoBudget    = 25000
	demoThreshold = 5

	// 演示固定选择第三家货代（海运最低价）
	demoForwarderQuoteID = "FQ-003"
)

// Runner 演示执行器。同一时刻至多一次演示在跑；Stop请求停止后，
// 剧本在下一个检查点退出，已完成的步骤不回滚。
type Runner struct {
	log    *zap.Logger
	engine *workflow.Engine

	stepDelay time.Duration

	running atomic.Bool
	stopped atomic.Bool
}

// NewRunner 创建演示执行器。stepDelay是剧本的基准步进间隔，
// 剧本中的各步延迟按与基准的比例缩放。
func NewRunner(logger *zap.Logger, engine *workflow.Engine, stepDelay time.Duration) *Runner {
	return &Runner{
		log:       logger,
		engine:    engine,
		stepDelay: stepDelay,
	}
}

// Running 演示是否进行中
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Run 启动演示。已有演示进行中时返回false。
func (r *Runner) Run() bool {
	if !r.running.CompareAndSwap(false, true) {
		return false
	}
	r.stopped.Store(false)
	go r.execute()
	return true
}

// Stop 请求停止当前演示
func (r *Runner) Stop() {
	if r.running.Load() {
		r.stopped.Store(true)
	}
}

// wait 按基准间隔的比例休眠。ratio=1.0对应一个完整步进。
func (r *Runner) wait(ratio float64) {
	time.Sleep(time.Duration(float64(r.stepDelay) * ratio))
}

func (r *Runner) cancelled() bool {
	if r.stopped.Load() {
		r.engine.Recorder().Record("System", "Demo Stopped", "System",
			"Demo stopped by user", entity.SeverityWarning)
		r.log.Info("demo stopped")
		return true
	}
	return false
}

// execute 演示剧本本体。各步骤的前置条件由引擎保证，
// 剧本只负责顺序与节奏。
func (r *Runner) execute() {
	defer r.running.Store(false)

	r.engine.Recorder().Record("System", "Demo Started", "System",
		"Full workflow demo initiated", entity.SeverityInfo)
	r.log.Info("demo started")

	// 需求预测
	r.wait(0.8)
	if _, err := r.engine.Forecast(demoSKUID, demoMonth, demoBudget); err != nil {
		r.log.Error("demo forecast failed", zap.Error(err))
		return
	}
	r.wait(1.2)

	if r.cancelled() {
		return
	}

	// 创建PR
	r.engine.CreatePR()
	r.wait(1.0)

	// 询价（等待时长覆盖定价回复的延迟）
	if _, err := r.engine.RequestPricing(); err != nil {
		r.log.Error("demo pricing request failed", zap.Error(err))
		return
	}
	r.wait(2.5)

	if r.cancelled() {
		return
	}

	// 人工确认、路由与审批
	r.engine.HumanSignoff()
	r.wait(1.0)
	if _, err := r.engine.RouteApproval(demoThreshold); err != nil {
		r.log.Error("demo approval routing failed", zap.Error(err))
		return
	}
	r.wait(0.8)
	r.engine.Approve("", entity.RoleManager)
	r.wait(1.0)

	if r.cancelled() {
		return
	}

	// 发送PO
	if _, err := r.engine.SendPO(); err != nil {
		r.log.Error("demo PO send failed", zap.Error(err))
		return
	}
	r.wait(1.0)

	// 货代询价与选择
	r.engine.RequestForwarderQuotes()
	r.wait(1.5)
	r.engine.SelectForwarder(demoForwarderQuoteID)
	r.wait(1.0)

	if r.cancelled() {
		return
	}

	// 交付跟踪与收货
	r.engine.SyncDelivery()
	r.wait(0.8)
	r.engine.SyncDelivery()
	r.wait(0.8)
	r.engine.GenerateGRN()
	r.wait(1.0)

	// 对账与付款
	r.engine.ImportInvoice()
	r.wait(0.8)
	r.engine.ThreeWayMatch()
	r.wait(0.8)
	r.engine.ExecutePayment(entity.PaymentTermFullSight)

	r.engine.Recorder().Record("System", "Demo Complete", "System",
		"Full procurement workflow completed successfully", entity.SeveritySuccess)
	r.log.Info("demo complete")
}
