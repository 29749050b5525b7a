package entity

// DeliveryRecord 交付跟踪记录（货代选定后按PO创建）
// ReceivedQty为0表示尚未录入收货数量，GRN生成时默认全量收货。
type DeliveryRecord struct {
	POID         string `json:"po_id"`
	Status       string `json:"status"`
	ETD          string `json:"etd,omitempty"`
	ETA          string `json:"eta,omitempty"`
	Carrier      string `json:"carrier,omitempty"`
	TrackingNo   string `json:"tracking_no,omitempty"`
	ReceivedQty  int    `json:"received_qty,omitempty"`
	OrderedQty   int    `json:"ordered_qty"`
	GRNGenerated bool   `json:"grn_generated"`
}

// 交付状态（只向前推进，partial为旁路分支）
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusShipped   = "shipped"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusCustoms   = "customs"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusPartial   = "partial"
)
