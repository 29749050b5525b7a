// Package workflow 实现采购流程状态机：从需求预测到付款结算的线性阶段推进。
// 引擎独占全部流程内存状态，所有变更只经由转换方法进入；
// 定价回复通过定时器在独立goroutine中回写，持有同一把锁。
package workflow

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/bitfantasy/orderpilot/internal/agent/audit"
	"github.com/bitfantasy/orderpilot/internal/agent/catalog"
	"github.com/bitfantasy/orderpilot/internal/agent/entity"
	"github.com/bitfantasy/orderpilot/internal/agent/mockgen"
	"github.com/bitfantasy/orderpilot/internal/sse"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	agentMailbox     = "procurement@orderpilot.ai"
	logisticsMailbox = "logistics@orderpilot.ai"

	maxNotifications = 20
)

// Engine 流程状态机。转换方法的前置条件不满足时静默返回（不修改状态、
// 不产生审计记录）；目录引用解析失败属于编程错误，以error显式上报。
type Engine struct {
	mu  sync.Mutex
	log *zap.Logger
	rec *audit.Recorder
	rng *rand.Rand

	pricingReplyDelay time.Duration

	stage          entity.WorkflowStage
	kpis           entity.KPISnapshot
	forecast       *entity.ForecastResult
	prs            []entity.PurchaseRequisition
	pos            []entity.PurchaseOrder
	emails         []entity.EmailThread
	quotes         []entity.ForwarderQuote
	deliveries     []entity.DeliveryRecord
	invoices       []entity.Invoice
	approvalQueue  []string
	supplierScores []entity.SupplierScore
	notifications  []string
	matchResult    string
}

// NewEngine 创建流程引擎。随机源由调用方注入，便于种子化测试。
func NewEngine(logger *zap.Logger, rec *audit.Recorder, rng *rand.Rand, pricingReplyDelay time.Duration) *Engine {
	e := &Engine{
		log:               logger,
		rec:               rec,
		rng:               rng,
		pricingReplyDelay: pricingReplyDelay,
		stage:             entity.StageForecast,
	}
	e.kpis = mockgen.KPIs(rng)
	return e
}

// Recorder 返回引擎使用的审计记录器
func (e *Engine) Recorder() *audit.Recorder {
	return e.rec
}

// Stage 当前阶段
func (e *Engine) Stage() entity.WorkflowStage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stage
}

var currencyPrinter = message.NewPrinter(language.English)

func fmtCurrency(n float64) string {
	return currencyPrinter.Sprintf("$%.2f", n)
}

// audit 记录审计条目并推送SSE通知
func (e *Engine) audit(module, action, actor, details, severity string) {
	entry := e.rec.Record(module, action, actor, details, severity)
	sse.PublishAuditEntry(entry.ID, module, action, entry.Severity)
}

// notify 追加顶栏通知（最多保留20条）
func (e *Engine) notify(msg string) {
	e.notifications = append([]string{msg}, e.notifications...)
	if len(e.notifications) > maxNotifications {
		e.notifications = e.notifications[:maxNotifications]
	}
	sse.PublishNotification(msg)
}

func (e *Engine) publish(action string) {
	sse.PublishWorkflowUpdate(string(e.stage), action)
}

// Forecast 生成需求预测并刷新预测准确率指标。阶段不变。
func (e *Engine) Forecast(skuID, month string, budget float64) (entity.ForecastResult, error) {
	sku, err := catalog.SKUByID(skuID)
	if err != nil {
		return entity.ForecastResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	result := mockgen.Forecast(e.rng, sku, month, budget)
	e.forecast = &result
	e.kpis.ForecastAccuracy = result.Confidence

	e.audit("Forecasting", "Forecast Generated", "AI Engine",
		fmt.Sprintf("SKU %s: predicted demand %d %s, reorder qty %d, est. cost %s (%d%% confidence)",
			sku.Name, result.PredictedDemand, sku.Unit, result.ReorderQty, fmtCurrency(result.EstimatedCost), result.Confidence),
		entity.SeverityInfo)
	e.notify(fmt.Sprintf("Forecast ready for %s", sku.Name))
	e.publish("forecast")

	e.log.Info("forecast generated",
		zap.String("sku_id", sku.ID),
		zap.Int("reorder_qty", result.ReorderQty),
		zap.Int("confidence", result.Confidence))
	return result, nil
}

// CreatePR 由最近一次预测创建草稿PR并加入审批队列。推进到pr_generation。
func (e *Engine) CreatePR() (entity.PurchaseRequisition, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.forecast == nil {
		return entity.PurchaseRequisition{}, false
	}

	sku, err := catalog.SKUByID(e.forecast.SKUID)
	if err != nil {
		e.log.Error("forecast references unknown SKU", zap.Error(err))
		return entity.PurchaseRequisition{}, false
	}
	supplier := catalog.SupplierForCategory(sku.Category)

	pr := entity.PurchaseRequisition{
		ID:           mockgen.NewPRID(),
		SKUID:        sku.ID,
		SKUName:      sku.Name,
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		Quantity:     e.forecast.ReorderQty,
		UnitPrice:    sku.LastPrice,
		TotalAmount:  e.forecast.EstimatedCost,
		Status:       entity.PRStatusDraft,
		CreatedAt:    time.Now(),
		Rationale:    e.forecast.Rationale,
	}
	e.prs = append([]entity.PurchaseRequisition{pr}, e.prs...)
	e.approvalQueue = append([]string{pr.ID}, e.approvalQueue...)

	e.audit("PR/PO Service", "Draft PR Created", "AI Engine",
		fmt.Sprintf("%s: %s x %d from %s — %s", pr.ID, pr.SKUName, pr.Quantity, pr.SupplierName, fmtCurrency(pr.TotalAmount)),
		entity.SeverityInfo)
	e.notify(fmt.Sprintf("Draft PR %s created", pr.ID))
	e.stage = entity.StagePRGeneration
	e.publish("create_pr")

	return pr, true
}

// RequestPricing 向供应商发出询价邮件，并调度延迟的模拟回复。
// 回复到达后按PR单号回写（不按位置索引），与期间的其他变更互不干扰。
func (e *Engine) RequestPricing() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.prs) == 0 {
		return false, nil
	}
	pr := e.prs[0]
	supplier, err := catalog.SupplierByID(pr.SupplierID)
	if err != nil {
		return false, err
	}
	sku, err := catalog.SKUByID(pr.SKUID)
	if err != nil {
		return false, err
	}

	body := fmt.Sprintf("Dear %s,\n\nWe are requesting an updated quote for:\n• Item: %s\n• Quantity: %d %s\n• Delivery: Within %d days\n\nPlease provide your best pricing and payment terms.\n\n[AI Disclosure: This message was composed by an AI procurement assistant. To speak with a human representative, reply with \"ESCALATE\" or click the link below.]\n\nBest regards,\nOrderPilot Procurement Agent",
		supplier.Name, pr.SKUName, pr.Quantity, sku.Unit, supplier.AvgLeadDays)
	email := mockgen.EmailThread(
		fmt.Sprintf("RFQ: %s — %d units", pr.SKUName, pr.Quantity),
		agentMailbox, supplier.Email, body,
		entity.IntentPricingResponse, false)
	e.emails = append([]entity.EmailThread{email}, e.emails...)

	e.setPRStatus(pr.ID, entity.PRStatusPricingRequested)

	e.audit("Email Agent", "Pricing Request Sent", "AI Engine",
		fmt.Sprintf("RFQ sent to %s (%s) for %s", supplier.Name, supplier.Email, pr.SKUName),
		entity.SeverityInfo)
	e.notify(fmt.Sprintf("Pricing request sent to %s", supplier.Name))
	e.publish("request_pricing")

	// 模拟供应商延迟回复；定时器触发后重新取锁，构成第二个临界区
	prID, skuName, origPrice, qty := pr.ID, pr.SKUName, pr.UnitPrice, pr.Quantity
	time.AfterFunc(e.pricingReplyDelay, func() {
		e.deliverPricingReply(prID, supplier, skuName, origPrice, qty)
	})
	return true, nil
}

// deliverPricingReply 定价回复的延迟效果：重报单价均匀取自原价的[0.92, 1.04)倍
func (e *Engine) deliverPricingReply(prID string, supplier entity.Supplier, skuName string, origPrice float64, qty int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	newPrice := origPrice * (0.92 + e.rng.Float64()*0.12)

	body := fmt.Sprintf("Dear OrderPilot,\n\nThank you for your inquiry. Our updated pricing:\n• Unit Price: %s\n• Payment Terms: %s\n• Lead Time: %d business days\n• MOQ: %d units\n\nWe look forward to your order.\n\nBest regards,\n%s Sales Team",
		fmtCurrency(newPrice), supplier.PaymentTerms, supplier.AvgLeadDays, int(math.Round(float64(qty)*0.5)), supplier.Name)
	// 回复主题回显询价主题
	email := mockgen.EmailThread(
		fmt.Sprintf("RE: RFQ: %s — %d units", skuName, qty),
		supplier.Email, agentMailbox, body,
		entity.IntentPricingResponse, false)
	e.emails = append([]entity.EmailThread{email}, e.emails...)

	for i := range e.prs {
		if e.prs[i].ID == prID {
			e.prs[i].Status = entity.PRStatusPricingReceived
			e.prs[i].UnitPrice = math.Round(newPrice*100) / 100
			e.prs[i].TotalAmount = math.Round(newPrice*float64(e.prs[i].Quantity)*100) / 100
			break
		}
	}

	e.audit("Email Agent", "Pricing Response Received", "AI Classifier",
		fmt.Sprintf("%s quoted %s/unit — intent classified as \"pricing_response\"", supplier.Name, fmtCurrency(newPrice)),
		entity.SeveritySuccess)
	e.notify(fmt.Sprintf("Pricing received from %s: %s/unit", supplier.Name, fmtCurrency(newPrice)))
	e.publish("pricing_reply")
}

// HumanSignoff 人工确认定价。推进到approval。
func (e *Engine) HumanSignoff() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.prs) == 0 {
		return false
	}
	pr := e.prs[0]
	e.setPRStatus(pr.ID, entity.PRStatusHumanReview)

	e.audit("Human Interface", "Pricing Sign-off", "Procurement Manager",
		fmt.Sprintf("Reviewed and approved pricing for %s: %s/unit — total %s", pr.SKUName, fmtCurrency(pr.UnitPrice), fmtCurrency(pr.TotalAmount)),
		entity.SeveritySuccess)
	e.notify(fmt.Sprintf("Pricing approved for %s", pr.SKUName))
	e.stage = entity.StageApproval
	e.publish("human_signoff")
	return true
}

// RouteApproval 按价差阈值路由审批人：超阈值升级到总监，否则经理审批。阶段不变。
func (e *Engine) RouteApproval(threshold float64) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.approvalQueue) == 0 {
		return false, nil
	}
	pr, ok := e.findPR(e.approvalQueue[0])
	if !ok {
		return false, nil
	}
	sku, err := catalog.SKUByID(pr.SKUID)
	if err != nil {
		return false, err
	}

	variance := (pr.UnitPrice - sku.LastPrice) / sku.LastPrice * 100
	approver := "Purchase Manager"
	severity := entity.SeverityInfo
	if math.Abs(variance) > threshold {
		approver = "Company Director"
		severity = entity.SeverityWarning
	}

	e.audit("Approval Workflow", "Routed for Approval", "System",
		fmt.Sprintf("%s routed to %s — price variance %.1f%% (threshold: %g%%)", pr.ID, approver, variance, threshold),
		severity)
	e.notify(fmt.Sprintf("%s routed to %s for approval", pr.ID, approver))
	e.publish("route_approval")
	return true, nil
}

// Approve 批准PR并生成PO（一对一，仅此处创建）。prID为空时默认取队首。
// 推进到supplier_comms。
func (e *Engine) Approve(prID, role string) (entity.PurchaseOrder, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if prID == "" {
		if len(e.approvalQueue) == 0 {
			return entity.PurchaseOrder{}, false
		}
		prID = e.approvalQueue[0]
	}
	pr, ok := e.findPR(prID)
	if !ok {
		return entity.PurchaseOrder{}, false
	}

	e.setPRStatus(prID, entity.PRStatusApproved)
	for i, id := range e.approvalQueue {
		if id == prID {
			e.approvalQueue = append(e.approvalQueue[:i], e.approvalQueue[i+1:]...)
			break
		}
	}

	po := entity.PurchaseOrder{
		ID:           mockgen.NewPOID(),
		PRID:         prID,
		SupplierID:   pr.SupplierID,
		SupplierName: pr.SupplierName,
		Items: []entity.POItem{
			{SKUID: pr.SKUID, SKUName: pr.SKUName, Qty: pr.Quantity, UnitPrice: pr.UnitPrice},
		},
		TotalAmount: pr.TotalAmount,
		Status:      entity.POStatusGenerated,
		CreatedAt:   time.Now(),
	}
	e.pos = append([]entity.PurchaseOrder{po}, e.pos...)
	e.setPRStatus(prID, entity.PRStatusPOGenerated)

	actor := "Purchase Manager"
	if role == entity.RoleDirector {
		actor = "Company Director"
	}
	e.audit("Approval Workflow", "PR Approved", actor,
		fmt.Sprintf("%s approved — PO %s generated", prID, po.ID), entity.SeveritySuccess)
	e.audit("PR/PO Service", "PO Generated", "System",
		fmt.Sprintf("%s: %s for %s", po.ID, fmtCurrency(po.TotalAmount), pr.SupplierName), entity.SeveritySuccess)
	e.notify(fmt.Sprintf("PO %s generated from approved PR %s", po.ID, prID))
	e.stage = entity.StageSupplierComms
	e.publish("approve")

	e.log.Info("PR approved", zap.String("pr_id", prID), zap.String("po_id", po.ID), zap.String("actor", actor))
	return po, true
}

// SendPO 向供应商发送PO邮件并标记已发送。阶段不变。
func (e *Engine) SendPO() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.pos) == 0 {
		return false, nil
	}
	po := e.pos[0]
	supplier, err := catalog.SupplierByID(po.SupplierID)
	if err != nil {
		return false, err
	}

	var names, lines []string
	for _, item := range po.Items {
		names = append(names, item.SKUName)
		lines = append(lines, fmt.Sprintf("• %s: %d units @ %s = %s",
			item.SKUName, item.Qty, fmtCurrency(item.UnitPrice), fmtCurrency(float64(item.Qty)*item.UnitPrice)))
	}
	body := fmt.Sprintf("Dear %s,\n\nPlease find attached Purchase Order %s:\n\n%s\n\nTotal: %s\n\nPlease confirm receipt and expected delivery date.\n\n[AI Disclosure: This message was composed by an AI procurement assistant. To speak with a human, reply \"ESCALATE\".]\n\nBest regards,\nOrderPilot Procurement Agent",
		supplier.Name, po.ID, strings.Join(lines, "\n"), fmtCurrency(po.TotalAmount))
	email := mockgen.EmailThread(
		fmt.Sprintf("Purchase Order %s — %s", po.ID, strings.Join(names, ", ")),
		agentMailbox, supplier.Email, body,
		entity.IntentConfirmation, false)
	e.emails = append([]entity.EmailThread{email}, e.emails...)

	e.pos[0].Status = entity.POStatusSent

	e.audit("Email Agent", "PO Sent", "AI Engine",
		fmt.Sprintf("PO %s sent to %s", po.ID, supplier.Name), entity.SeverityInfo)
	e.notify(fmt.Sprintf("PO %s sent to %s", po.ID, supplier.Name))
	e.publish("send_po")
	return true, nil
}

// SupplierEscalation 模拟供应商来信要求人工对接（requiresHuman=true）。阶段不变。
func (e *Engine) SupplierEscalation() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.pos) == 0 {
		return false, nil
	}
	po := e.pos[0]
	supplier, err := catalog.SupplierByID(po.SupplierID)
	if err != nil {
		return false, err
	}

	body := fmt.Sprintf("Dear OrderPilot,\n\nWe appreciate the order but would like to discuss payment terms and delivery schedule with a human representative before confirming.\n\nPlease have your procurement team contact us.\n\nRegards,\n%s", supplier.Name)
	email := mockgen.EmailThread(
		fmt.Sprintf("RE: Purchase Order %s — Request for Human Contact", po.ID),
		supplier.Email, agentMailbox, body,
		entity.IntentEscalation, true)
	e.emails = append([]entity.EmailThread{email}, e.emails...)

	e.audit("Email Agent", "Human Escalation Triggered", "AI Classifier",
		fmt.Sprintf("%s requested human contact for PO %s — intent: \"escalation\"", supplier.Name, po.ID),
		entity.SeverityWarning)
	e.notify(fmt.Sprintf("%s requests human contact — escalation required", supplier.Name))
	e.publish("escalation")
	return true, nil
}

// RequestForwarderQuotes 重置全部货代报价为pending并逐家发出询价邮件。
// 推进到logistics。
func (e *Engine) RequestForwarderQuotes() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.pos) == 0 {
		return false
	}

	e.quotes = make([]entity.ForwarderQuote, len(catalog.ForwarderQuotes))
	copy(e.quotes, catalog.ForwarderQuotes)
	for i := range e.quotes {
		e.quotes[i].Status = entity.QuoteStatusPending
	}

	e.audit("Logistics Optimizer", "Forwarder Quotes Requested", "AI Engine",
		fmt.Sprintf("Requested quotes from %d forwarders (air + sea options)", len(e.quotes)),
		entity.SeverityInfo)
	e.notify(fmt.Sprintf("Forwarder quotes requested from %d providers", len(e.quotes)))

	for _, q := range e.quotes {
		body := fmt.Sprintf("Dear %s,\n\nWe require freight forwarding services for an upcoming shipment. Please provide your best quote.\n\n[AI Disclosure: This is an automated request.]\n\nBest regards,\nOrderPilot", q.ForwarderName)
		email := mockgen.EmailThread(
			"Quote Request: Freight Forwarding — PO Shipment",
			logisticsMailbox, forwarderMailbox(q.ForwarderName), body,
			entity.IntentConfirmation, false)
		e.emails = append([]entity.EmailThread{email}, e.emails...)
	}

	e.stage = entity.StageLogistics
	e.publish("request_forwarder_quotes")
	return true
}

func forwarderMailbox(name string) string {
	host := strings.ToLower(name)
	host = strings.NewReplacer("+", "", " ", "").Replace(host)
	return "quotes@" + host + ".com"
}

// SelectForwarder 选定货代报价：被选报价置selected，其余全部置rejected，
// 任意时刻至多一条selected。quoteID为空时默认取第一条。
// 同时为最近的PO创建交付记录。推进到delivery。
func (e *Engine) SelectForwarder(quoteID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.quotes) == 0 {
		return false
	}
	if quoteID == "" {
		quoteID = e.quotes[0].ID
	}

	var chosen *entity.ForwarderQuote
	for i := range e.quotes {
		if e.quotes[i].ID == quoteID {
			chosen = &e.quotes[i]
			break
		}
	}
	if chosen == nil {
		return false
	}

	for i := range e.quotes {
		if e.quotes[i].ID == quoteID {
			e.quotes[i].Status = entity.QuoteStatusSelected
		} else {
			e.quotes[i].Status = entity.QuoteStatusRejected
		}
	}

	e.audit("Logistics Optimizer", "Forwarder Selected", "Procurement Manager",
		fmt.Sprintf("Selected %s (%s) — %s, %d days", chosen.ForwarderName, chosen.Mode, fmtCurrency(chosen.Cost), chosen.TransitDays),
		entity.SeveritySuccess)
	e.notify(fmt.Sprintf("Forwarder selected: %s", chosen.ForwarderName))
	e.stage = entity.StageDelivery

	if len(e.pos) > 0 {
		po := e.pos[0]
		ordered := 0
		for _, item := range po.Items {
			ordered += item.Qty
		}
		delivery := entity.DeliveryRecord{
			POID:       po.ID,
			Status:     entity.DeliveryStatusPending,
			OrderedQty: ordered,
			Carrier:    chosen.ForwarderName,
		}
		e.deliveries = append([]entity.DeliveryRecord{delivery}, e.deliveries...)
	}

	e.publish("select_forwarder")
	return true
}

var deliveryProgression = []string{
	entity.DeliveryStatusShipped,
	entity.DeliveryStatusInTransit,
	entity.DeliveryStatusCustoms,
	entity.DeliveryStatusDelivered,
}

// SyncDelivery 交付状态沿shipped→in_transit→customs→delivered前进一步，
// 到达delivered后不再推进；首次同步时分配ETA与运单号。阶段不变。
func (e *Engine) SyncDelivery() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.deliveries) == 0 {
		return false
	}
	d := &e.deliveries[0]

	idx := -1
	for i, s := range deliveryProgression {
		if s == d.Status {
			idx = i
			break
		}
	}
	next := deliveryProgression[len(deliveryProgression)-1]
	if idx+1 < len(deliveryProgression) {
		next = deliveryProgression[idx+1]
	}
	d.Status = next
	d.ETA = time.Now().Add(7 * 24 * time.Hour).Format("2006-01-02")
	if d.TrackingNo == "" {
		d.TrackingNo = mockgen.TrackingNo(e.rng)
	}

	e.audit("Delivery Tracker", "Status Synced", "System",
		fmt.Sprintf("PO %s: status updated to \"%s\" — ETA: %s", d.POID, next, d.ETA),
		entity.SeverityInfo)
	e.notify(fmt.Sprintf("Delivery status: %s", next))
	e.publish("sync_delivery")
	return true
}

// PartialDelivery 记录部分到货：收货数量为订购量的70%（四舍五入）。阶段不变。
func (e *Engine) PartialDelivery() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.deliveries) == 0 {
		return false
	}
	d := &e.deliveries[0]
	received := int(math.Round(float64(d.OrderedQty) * 0.7))
	d.Status = entity.DeliveryStatusPartial
	d.ReceivedQty = received

	e.audit("Delivery Tracker", "Partial Delivery Recorded", "Warehouse",
		fmt.Sprintf("Received %d/%d units — %d units outstanding", received, d.OrderedQty, d.OrderedQty-received),
		entity.SeverityWarning)
	e.notify(fmt.Sprintf("Partial delivery: %d/%d units received", received, d.OrderedQty))
	e.publish("partial_delivery")
	return true
}

// GenerateGRN 生成收货单：标记delivered，未录入收货量时默认全量。推进到payment。
func (e *Engine) GenerateGRN() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.deliveries) == 0 {
		return false
	}
	d := &e.deliveries[0]
	d.GRNGenerated = true
	d.Status = entity.DeliveryStatusDelivered
	if d.ReceivedQty == 0 {
		d.ReceivedQty = d.OrderedQty
	}

	e.audit("Delivery Tracker", "GRN Generated", "Warehouse",
		fmt.Sprintf("GRN for PO %s: %d/%d units confirmed", d.POID, d.ReceivedQty, d.OrderedQty),
		entity.SeveritySuccess)
	e.notify(fmt.Sprintf("GRN generated for PO %s", d.POID))
	e.stage = entity.StagePayment
	e.publish("generate_grn")
	return true
}

// ImportInvoice 为最近的PO导入发票，金额为PO总额的[0.98, 1.02)倍。阶段不变。
func (e *Engine) ImportInvoice() (entity.Invoice, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.pos) == 0 {
		return entity.Invoice{}, false
	}
	po := e.pos[0]

	inv := entity.Invoice{
		ID:           mockgen.NewInvoiceID(),
		POID:         po.ID,
		SupplierName: po.SupplierName,
		Amount:       po.TotalAmount * (0.98 + e.rng.Float64()*0.04),
		Currency:     "USD",
		DueDate:      time.Now().Add(30 * 24 * time.Hour).Format("2006-01-02"),
		Status:       entity.InvoiceStatusPending,
	}
	e.invoices = append([]entity.Invoice{inv}, e.invoices...)

	e.audit("Payment & Reconciliation", "Invoice Imported", "System",
		fmt.Sprintf("%s: %s from %s — due %s", inv.ID, fmtCurrency(inv.Amount), inv.SupplierName, inv.DueDate),
		entity.SeverityInfo)
	e.notify(fmt.Sprintf("Invoice %s imported", inv.ID))
	e.publish("import_invoice")
	return inv, true
}

// ThreeWayMatch PO-GRN-发票三单匹配：价差<2%且数量一致为matched，
// 否则置discrepancy。discrepancy是正常业务输出而非系统故障。阶段不变。
func (e *Engine) ThreeWayMatch() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.invoices) == 0 || len(e.pos) == 0 || len(e.deliveries) == 0 {
		return "", false
	}
	inv := e.invoices[0]
	po := e.pos[0]
	d := e.deliveries[0]

	variance := math.Abs(po.TotalAmount-inv.Amount) / po.TotalAmount * 100
	received := d.ReceivedQty
	if received == 0 {
		received = d.OrderedQty
	}
	qtyMatch := received == d.OrderedQty
	matched := variance < 2 && qtyMatch

	if matched {
		e.invoices[0].Status = entity.InvoiceStatusMatched
		e.matchResult = fmt.Sprintf("3-Way Match PASSED — PO: %s, Invoice: %s (%.1f%% variance), GRN: %d/%d units",
			fmtCurrency(po.TotalAmount), fmtCurrency(inv.Amount), variance, received, d.OrderedQty)
		e.audit("Payment & Reconciliation", "3-Way Match", "System",
			"Match passed — ready for payment", entity.SeveritySuccess)
	} else {
		e.invoices[0].Status = entity.InvoiceStatusDiscrepancy
		e.matchResult = fmt.Sprintf("3-Way Match DISCREPANCY — PO: %s vs Invoice: %s (%.1f%% variance) | GRN: %d/%d units — requires review",
			fmtCurrency(po.TotalAmount), fmtCurrency(inv.Amount), variance, received, d.OrderedQty)
		e.audit("Payment & Reconciliation", "3-Way Match", "System",
			fmt.Sprintf("Discrepancy detected — %.1f%% price variance", variance), entity.SeverityWarning)
	}

	if matched {
		e.notify("3-way match passed")
	} else {
		e.notify("3-way match discrepancy — review required")
	}
	e.publish("three_way_match")
	return e.matchResult, true
}

// ExecutePayment 执行付款：发票置paid、PO置completed、累计成本节约指标，
// 并为该供应商生成绩效评分。已付发票拒绝重复付款。推进到complete。
func (e *Engine) ExecutePayment(paymentTerm string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.invoices) == 0 || e.invoices[0].Status == entity.InvoiceStatusPaid {
		return false
	}
	inv := e.invoices[0]
	e.invoices[0].Status = entity.InvoiceStatusPaid
	if len(e.pos) > 0 {
		e.pos[0].Status = entity.POStatusCompleted
	}

	if paymentTerm == "" {
		paymentTerm = entity.PaymentTermFullSight
	}
	e.audit("Payment & Reconciliation", "Payment Executed", "Finance Controller",
		fmt.Sprintf("%s: %s paid via banking API — terms: %s", inv.ID, fmtCurrency(inv.Amount), strings.ReplaceAll(paymentTerm, "_", " ")),
		entity.SeveritySuccess)
	e.notify(fmt.Sprintf("Payment of %s executed", fmtCurrency(inv.Amount)))
	e.kpis.CostSavings += int(math.Round(inv.Amount * 0.03))
	e.stage = entity.StageComplete

	if _, ok := catalog.SupplierByName(inv.SupplierName); ok {
		e.supplierScores = mockgen.SupplierScores(e.rng)
	}

	e.publish("execute_payment")
	e.log.Info("payment executed", zap.String("invoice_id", inv.ID), zap.Float64("amount", inv.Amount))
	return true
}

// setPRStatus 按单号更新PR状态
func (e *Engine) setPRStatus(prID, status string) {
	for i := range e.prs {
		if e.prs[i].ID == prID {
			e.prs[i].Status = status
			return
		}
	}
}

// findPR 按单号查找PR副本
func (e *Engine) findPR(prID string) (entity.PurchaseRequisition, bool) {
	for _, pr := range e.prs {
		if pr.ID == prID {
			return pr, true
		}
	}
	return entity.PurchaseRequisition{}, false
}
