package entity

// SKU 库存单元（静态目录数据，不可变）
type SKU struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	CurrentStock int     `json:"current_stock"`
	ReorderPoint int     `json:"reorder_point"`
	SafetyStock  int     `json:"safety_stock"`
	LeadTimeDays int     `json:"lead_time_days"`
	LastPrice    float64 `json:"last_price"`
}

// Supplier 供应商（静态目录数据）
type Supplier struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Country      string   `json:"country"`
	Rating       float64  `json:"rating"`
	Categories   []string `json:"categories"`
	PaymentTerms string   `json:"payment_terms"`
	AvgLeadDays  int      `json:"avg_lead_days"`
	Email        string   `json:"email"`
}

// ForwarderQuote 货代报价
type ForwarderQuote struct {
	ID            string  `json:"id"`
	ForwarderName string  `json:"forwarder_name"`
	Mode          string  `json:"mode"` // air/sea
	Cost          float64 `json:"cost"`
	TransitDays   int     `json:"transit_days"`
	Status        string  `json:"status"` // pending/selected/rejected
}

// 运输方式
const (
	ForwarderModeAir = "air"
	ForwarderModeSea = "sea"
)

// 货代报价状态
const (
	QuoteStatusPending  = "pending"
	QuoteStatusSelected = "selected"
	QuoteStatusRejected = "rejected"
)
