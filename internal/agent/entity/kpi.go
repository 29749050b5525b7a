package entity

// KPISnapshot 看板指标快照
type KPISnapshot struct {
	ForecastAccuracy int `json:"forecast_accuracy"` // percent
	AvgCycleTime     int `json:"avg_cycle_time"`    // days
	CostSavings      int `json:"cost_savings"`      // USD
	SupplierSLA      int `json:"supplier_sla"`      // percent
	AutomationRate   int `json:"automation_rate"`   // percent
	POsPending       int `json:"pos_pending"`
}

// SupplierScore 供应商绩效评分行
type SupplierScore struct {
	Metric string  `json:"metric"`
	Weight float64 `json:"weight"`
	Score  float64 `json:"score"`
}
