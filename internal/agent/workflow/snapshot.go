package workflow

import (
	"github.com/bitfantasy/orderpilot/internal/agent/entity"
)

// Snapshot 流程状态的一致性快照。所有切片均为副本，调用方可自由持有。
type Snapshot struct {
	Stage           entity.WorkflowStage         `json:"stage"`
	StageOrder      []entity.WorkflowStage       `json:"stage_order"`
	KPIs            entity.KPISnapshot           `json:"kpis"`
	Forecast        *entity.ForecastResult       `json:"forecast"`
	PRs             []entity.PurchaseRequisition `json:"prs"`
	POs             []entity.PurchaseOrder       `json:"pos"`
	Emails          []entity.EmailThread         `json:"emails"`
	ForwarderQuotes []entity.ForwarderQuote      `json:"forwarder_quotes"`
	Deliveries      []entity.DeliveryRecord      `json:"deliveries"`
	Invoices        []entity.Invoice             `json:"invoices"`
	ApprovalQueue   []string                     `json:"approval_queue"`
	SupplierScores  []entity.SupplierScore       `json:"supplier_scores"`
	Notifications   []string                     `json:"notifications"`
	MatchResult     string                       `json:"match_result"`
}

// Snapshot 在单次持锁期间拷贝全部流程状态
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Stage:           e.stage,
		StageOrder:      entity.StageOrder,
		KPIs:            e.kpis,
		PRs:             append([]entity.PurchaseRequisition(nil), e.prs...),
		POs:             append([]entity.PurchaseOrder(nil), e.pos...),
		Emails:          append([]entity.EmailThread(nil), e.emails...),
		ForwarderQuotes: append([]entity.ForwarderQuote(nil), e.quotes...),
		Deliveries:      append([]entity.DeliveryRecord(nil), e.deliveries...),
		Invoices:        append([]entity.Invoice(nil), e.invoices...),
		ApprovalQueue:   append([]string(nil), e.approvalQueue...),
		SupplierScores:  append([]entity.SupplierScore(nil), e.supplierScores...),
		Notifications:   append([]string(nil), e.notifications...),
		MatchResult:     e.matchResult,
	}
	if e.forecast != nil {
		f := *e.forecast
		snap.Forecast = &f
	}
	return snap
}

// KPIs 返回当前看板指标
func (e *Engine) KPIs() entity.KPISnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.kpis
}
