package entity

// WorkflowStage 采购流程阶段
type WorkflowStage string

// 流程阶段（按进度条展示顺序）
const (
	StageForecast      WorkflowStage = "forecast"
	StagePRGeneration  WorkflowStage = "pr_generation"
	StageApproval      WorkflowStage = "approval"
	StageSupplierComms WorkflowStage = "supplier_comms"
	StageLogistics     WorkflowStage = "logistics"
	StageDelivery      WorkflowStage = "delivery"
	StagePayment       WorkflowStage = "payment"
	StageComplete      WorkflowStage = "complete"
)

// StageOrder 阶段顺序
var StageOrder = []WorkflowStage{
	StageForecast,
	StagePRGeneration,
	StageApproval,
	StageSupplierComms,
	StageLogistics,
	StageDelivery,
	StagePayment,
	StageComplete,
}

// 审批人角色
const (
	RoleManager  = "manager"
	RoleDirector = "director"
)

// 付款条款
const (
	PaymentTermPartial   = "partial"
	PaymentTermFullPre   = "full_pre"
	PaymentTermFullSight = "full_sight"
)
