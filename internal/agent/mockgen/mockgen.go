// Package mockgen 生成演示用的模拟记录。所有生成函数都是纯函数：
// 随机源由调用方注入，便于种子化测试；输出的公式和取值范围是契约。
package mockgen

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bitfantasy/orderpilot/internal/agent/entity"
)

// Forecast 生成需求预测。
// 需求乘数均匀取自[0.8, 1.4)，置信度为[70, 95]的均匀整数。
// 预估成本超出预算时，建议按预算可覆盖的数量下部分订单。
func Forecast(rng *rand.Rand, sku entity.SKU, month string, budget float64) entity.ForecastResult {
	multiplier := 0.8 + rng.Float64()*0.6
	predicted := int(math.Round(float64(sku.ReorderPoint) * multiplier))
	reorderQty := predicted - sku.CurrentStock + sku.SafetyStock
	if reorderQty < 0 {
		reorderQty = 0
	}
	estimatedCost := float64(reorderQty) * sku.LastPrice
	confidence := 70 + int(math.Round(rng.Float64()*25))

	var rationale string
	if estimatedCost > budget {
		rationale = fmt.Sprintf("Demand forecast of %d %s exceeds budget. Recommend partial order of %d %s and defer remainder.",
			predicted, sku.Unit, int(math.Floor(budget/sku.LastPrice)), sku.Unit)
	} else {
		rationale = fmt.Sprintf("Based on 12-month rolling average and seasonal adjustment. Stock below reorder point (%d/%d). Recommend reorder of %d %s.",
			sku.CurrentStock, sku.ReorderPoint, reorderQty, sku.Unit)
	}

	return entity.ForecastResult{
		SKUID:           sku.ID,
		Month:           month,
		PredictedDemand: predicted,
		ReorderQty:      reorderQty,
		EstimatedCost:   estimatedCost,
		Confidence:      confidence,
		Rationale:       rationale,
	}
}

// idSeq 以启动时刻的纳秒时间戳为基准单调递增，保证进程内单据号不重复
var idSeq atomic.Int64

func init() {
	idSeq.Store(time.Now().UnixNano())
}

// NewID 生成带前缀的业务单据号：前缀 + 时间基准序号的大写base36。
// 单据号是不透明字符串，进程内唯一即可。
func NewID(prefix string) string {
	return prefix + "-" + strings.ToUpper(strconv.FormatInt(idSeq.Add(1), 36))
}

// NewPRID 生成PR单号
func NewPRID() string { return NewID("PR") }

// NewPOID 生成PO单号
func NewPOID() string { return NewID("PO") }

// NewInvoiceID 生成发票号
func NewInvoiceID() string { return NewID("INV") }

// EmailThread 创建邮件记录。Agent发出的邮件必须自我披露自动化身份，
// 因此AIDisclosure无条件为true。
func EmailThread(subject, from, to, body, intent string, requiresHuman bool) entity.EmailThread {
	return entity.EmailThread{
		ID:            NewID("EM"),
		Subject:       subject,
		From:          from,
		To:            to,
		Timestamp:     time.Now(),
		Body:          body,
		AIDisclosure:  true,
		Intent:        intent,
		RequiresHuman: requiresHuman,
	}
}

// ScoreMetric 评分指标定义
type ScoreMetric struct {
	Metric string
	Weight float64
}

// ScoreMetrics 供应商绩效评分指标，权重合计1.0
var ScoreMetrics = []ScoreMetric{
	{Metric: "On-Time Delivery", Weight: 0.25},
	{Metric: "Price Competitiveness", Weight: 0.20},
	{Metric: "Order Accuracy", Weight: 0.20},
	{Metric: "Response Time", Weight: 0.15},
	{Metric: "Quality Rating", Weight: 0.20},
}

// SupplierScores 生成供应商绩效评分，每项得分均匀取自[60, 100]，保留1位小数。
func SupplierScores(rng *rand.Rand) []entity.SupplierScore {
	scores := make([]entity.SupplierScore, 0, len(ScoreMetrics))
	for _, m := range ScoreMetrics {
		scores = append(scores, entity.SupplierScore{
			Metric: m.Metric,
			Weight: m.Weight,
			Score:  math.Round((60+rng.Float64()*40)*10) / 10,
		})
	}
	return scores
}

// KPIs 生成看板指标快照，各指标在固定区间内独立取值。
func KPIs(rng *rand.Rand) entity.KPISnapshot {
	return entity.KPISnapshot{
		ForecastAccuracy: 82 + int(math.Round(rng.Float64()*12)),
		AvgCycleTime:     8 + int(math.Round(rng.Float64()*7)),
		CostSavings:      12400 + int(math.Round(rng.Float64()*8000)),
		SupplierSLA:      88 + int(math.Round(rng.Float64()*10)),
		AutomationRate:   62 + int(math.Round(rng.Float64()*20)),
		POsPending:       int(math.Round(rng.Float64() * 5)),
	}
}

const trackingChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// TrackingNo 生成运单号：TRK- + 6位随机base36大写字符
func TrackingNo(rng *rand.Rand) string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = trackingChars[rng.Intn(len(trackingChars))]
	}
	return "TRK-" + strings.ToUpper(string(b))
}
