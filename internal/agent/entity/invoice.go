package entity

// Invoice 发票（每个PO导入一张）
type Invoice struct {
	ID           string  `json:"id"`
	POID         string  `json:"po_id"`
	SupplierName string  `json:"supplier_name"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	DueDate      string  `json:"due_date"`
	Status       string  `json:"status"`
}

// 发票状态
const (
	InvoiceStatusPending     = "pending"
	InvoiceStatusMatched     = "matched"
	InvoiceStatusDiscrepancy = "discrepancy"
	InvoiceStatusPaid        = "paid"
)
