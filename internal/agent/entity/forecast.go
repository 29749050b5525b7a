package entity

// ForecastResult 需求预测结果（生成后不可变，仅保留最近一次）
type ForecastResult struct {
	SKUID           string  `json:"sku_id"`
	Month           string  `json:"month"`
	PredictedDemand int     `json:"predicted_demand"`
	ReorderQty      int     `json:"reorder_qty"`
	EstimatedCost   float64 `json:"estimated_cost"`
	Confidence      int     `json:"confidence"` // 0-100
	Rationale       string  `json:"rationale"`
}
