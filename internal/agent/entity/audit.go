package entity

import "time"

// AuditEntry 审计日志条目（只追加，创建后不可变）
// ID为全局单调递增序号，跨所有实体类型共用同一个计数器。
type AuditEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Module    string    `json:"module"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Details   string    `json:"details"`
	Severity  string    `json:"severity"`
}

// 审计级别
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeveritySuccess = "success"
	SeverityError   = "error"
)
