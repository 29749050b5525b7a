package handler

import (
	"github.com/bitfantasy/orderpilot/internal/agent/catalog"
	"github.com/bitfantasy/orderpilot/internal/agent/entity"
	"github.com/bitfantasy/orderpilot/internal/agent/workflow"
	"github.com/gin-gonic/gin"
)

// WorkflowHandler 采购流程处理器
type WorkflowHandler struct {
	engine *workflow.Engine
}

func NewWorkflowHandler(engine *workflow.Engine) *WorkflowHandler {
	return &WorkflowHandler{engine: engine}
}

// GetState 流程状态快照
// GET /api/v1/state
func (h *WorkflowHandler) GetState(c *gin.Context) {
	Success(c, h.engine.Snapshot())
}

// GetAudit 审计日志（最近优先）
// GET /api/v1/audit
func (h *WorkflowHandler) GetAudit(c *gin.Context) {
	Success(c, h.engine.Recorder().Entries())
}

// GetKPIs 看板指标
// GET /api/v1/kpis
func (h *WorkflowHandler) GetKPIs(c *gin.Context) {
	Success(c, h.engine.KPIs())
}

// ListSKUs SKU目录
// GET /api/v1/catalog/skus
func (h *WorkflowHandler) ListSKUs(c *gin.Context) {
	Success(c, catalog.SKUs)
}

// ListSuppliers 供应商目录
// GET /api/v1/catalog/suppliers
func (h *WorkflowHandler) ListSuppliers(c *gin.Context) {
	Success(c, catalog.Suppliers)
}

// ListForwarders 货代基础报价目录
// GET /api/v1/catalog/forwarders
func (h *WorkflowHandler) ListForwarders(c *gin.Context) {
	Success(c, catalog.ForwarderQuotes)
}

type forecastRequest struct {
	SKUID  string  `json:"sku_id" binding:"required"`
	Month  string  `json:"month" binding:"required"`
	Budget float64 `json:"budget" binding:"required,gt=0"`
}

// Forecast 生成需求预测
// POST /api/v1/workflow/forecast
func (h *WorkflowHandler) Forecast(c *gin.Context) {
	var req forecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	result, err := h.engine.Forecast(req.SKUID, req.Month, req.Budget)
	if err != nil {
		NotFound(c, "SKU不存在: "+req.SKUID)
		return
	}
	Success(c, result)
}

// CreatePR 创建采购申请
// POST /api/v1/workflow/pr
func (h *WorkflowHandler) CreatePR(c *gin.Context) {
	pr, ok := h.engine.CreatePR()
	if !ok {
		Conflict(c, "请先生成需求预测")
		return
	}
	Created(c, pr)
}

// RequestPricing 发送询价
// POST /api/v1/workflow/pricing-request
func (h *WorkflowHandler) RequestPricing(c *gin.Context) {
	ok, err := h.engine.RequestPricing()
	if err != nil {
		InternalError(c, "询价失败: "+err.Error())
		return
	}
	if !ok {
		Conflict(c, "没有可询价的采购申请")
		return
	}
	Success(c, nil)
}

// HumanSignoff 人工确认定价
// POST /api/v1/workflow/signoff
func (h *WorkflowHandler) HumanSignoff(c *gin.Context) {
	if !h.engine.HumanSignoff() {
		Conflict(c, "没有待确认的采购申请")
		return
	}
	Success(c, nil)
}

type routeApprovalRequest struct {
	// 指针区分"未传"与显式0：阈值0表示任何价差都升级审批
	Threshold *float64 `json:"threshold"`
}

// RouteApproval 审批路由
// POST /api/v1/workflow/route-approval
func (h *WorkflowHandler) RouteApproval(c *gin.Context) {
	var req routeApprovalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "请求参数错误: "+err.Error())
			return
		}
	}
	threshold := 5.0
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	ok, err := h.engine.RouteApproval(threshold)
	if err != nil {
		InternalError(c, "审批路由失败: "+err.Error())
		return
	}
	if !ok {
		Conflict(c, "审批队列为空")
		return
	}
	Success(c, nil)
}

type approveRequest struct {
	PRID string `json:"pr_id"`
	Role string `json:"role"`
}

// Approve 批准PR并生成PO
// POST /api/v1/workflow/approve
func (h *WorkflowHandler) Approve(c *gin.Context) {
	var req approveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "请求参数错误: "+err.Error())
			return
		}
	}
	if req.Role == "" {
		req.Role = entity.RoleManager
	}

	po, ok := h.engine.Approve(req.PRID, req.Role)
	if !ok {
		Conflict(c, "没有待审批的采购申请")
		return
	}
	Created(c, po)
}

// SendPO 发送采购订单
// POST /api/v1/workflow/po/send
func (h *WorkflowHandler) SendPO(c *gin.Context) {
	ok, err := h.engine.SendPO()
	if err != nil {
		InternalError(c, "PO发送失败: "+err.Error())
		return
	}
	if !ok {
		Conflict(c, "没有可发送的采购订单")
		return
	}
	Success(c, nil)
}

// SupplierEscalation 模拟供应商升级来信
// POST /api/v1/workflow/escalation
func (h *WorkflowHandler) SupplierEscalation(c *gin.Context) {
	ok, err := h.engine.SupplierEscalation()
	if err != nil {
		InternalError(c, "升级模拟失败: "+err.Error())
		return
	}
	if !ok {
		Conflict(c, "没有进行中的采购订单")
		return
	}
	Success(c, nil)
}

// RequestForwarderQuotes 货代询价
// POST /api/v1/workflow/forwarder-quotes
func (h *WorkflowHandler) RequestForwarderQuotes(c *gin.Context) {
	if !h.engine.RequestForwarderQuotes() {
		Conflict(c, "没有进行中的采购订单")
		return
	}
	Success(c, nil)
}

type selectForwarderRequest struct {
	QuoteID string `json:"quote_id"`
}

// SelectForwarder 选择货代
// POST /api/v1/workflow/forwarder-select
func (h *WorkflowHandler) SelectForwarder(c *gin.Context) {
	var req selectForwarderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "请求参数错误: "+err.Error())
			return
		}
	}

	if !h.engine.SelectForwarder(req.QuoteID) {
		Conflict(c, "没有可选择的货代报价")
		return
	}
	Success(c, nil)
}

// SyncDelivery 同步物流状态
// POST /api/v1/workflow/delivery/sync
func (h *WorkflowHandler) SyncDelivery(c *gin.Context) {
	if !h.engine.SyncDelivery() {
		Conflict(c, "没有可跟踪的交付记录")
		return
	}
	Success(c, nil)
}

// PartialDelivery 记录部分到货
// POST /api/v1/workflow/delivery/partial
func (h *WorkflowHandler) PartialDelivery(c *gin.Context) {
	if !h.engine.PartialDelivery() {
		Conflict(c, "没有可跟踪的交付记录")
		return
	}
	Success(c, nil)
}

// GenerateGRN 生成收货单
// POST /api/v1/workflow/grn
func (h *WorkflowHandler) GenerateGRN(c *gin.Context) {
	if !h.engine.GenerateGRN() {
		Conflict(c, "没有可收货的交付记录")
		return
	}
	Success(c, nil)
}

// ImportInvoice 导入发票
// POST /api/v1/workflow/invoice/import
func (h *WorkflowHandler) ImportInvoice(c *gin.Context) {
	inv, ok := h.engine.ImportInvoice()
	if !ok {
		Conflict(c, "没有进行中的采购订单")
		return
	}
	Created(c, inv)
}

// ThreeWayMatch 三单匹配
// POST /api/v1/workflow/invoice/match
func (h *WorkflowHandler) ThreeWayMatch(c *gin.Context) {
	result, ok := h.engine.ThreeWayMatch()
	if !ok {
		Conflict(c, "三单不齐，无法匹配")
		return
	}
	Success(c, gin.H{"match_result": result})
}

type paymentRequest struct {
	PaymentTerm string `json:"payment_term"`
}

// ExecutePayment 执行付款
// POST /api/v1/workflow/payment
func (h *WorkflowHandler) ExecutePayment(c *gin.Context) {
	var req paymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "请求参数错误: "+err.Error())
			return
		}
	}

	if !h.engine.ExecutePayment(req.PaymentTerm) {
		Conflict(c, "没有待付款的发票")
		return
	}
	Success(c, nil)
}
