package entity

import "time"

// PurchaseRequisition 采购申请单（由预测结果生成）
type PurchaseRequisition struct {
	ID           string    `json:"id"`
	SKUID        string    `json:"sku_id"`
	SKUName      string    `json:"sku_name"`
	SupplierID   string    `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
	Quantity     int       `json:"quantity"`
	UnitPrice    float64   `json:"unit_price"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	Rationale    string    `json:"rationale"`
}

// PR状态（顺序推进）
const (
	PRStatusDraft            = "draft"
	PRStatusPricingRequested = "pricing_requested"
	PRStatusPricingReceived  = "pricing_received"
	PRStatusHumanReview      = "human_review"
	PRStatusApproved         = "approved"
	PRStatusPOGenerated      = "po_generated"
	PRStatusPOSent           = "po_sent"
)

// PurchaseOrder 采购订单（审批通过后由PR一对一生成）
type PurchaseOrder struct {
	ID           string    `json:"id"`
	PRID         string    `json:"pr_id"`
	SupplierID   string    `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
	Items        []POItem  `json:"items"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// POItem PO行项
type POItem struct {
	SKUID     string  `json:"sku_id"`
	SKUName   string  `json:"sku_name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
}

// PO状态
const (
	POStatusGenerated    = "generated"
	POStatusSent         = "sent"
	POStatusAcknowledged = "acknowledged"
	POStatusInTransit    = "in_transit"
	POStatusDelivered    = "delivered"
	POStatusCompleted    = "completed"
)
