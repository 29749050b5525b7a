// Package audit 维护流程的审计日志：进程级单调递增序号、只追加、最近优先。
package audit

import (
	"fmt"
	"sync"
	"time"

	"github.com/bitfantasy/orderpilot/internal/agent/entity"
)

// Recorder 审计记录器。序号计数器为进程级状态，所有实体类型共用。
type Recorder struct {
	mu      sync.Mutex
	seq     int
	entries []entity.AuditEntry
}

// NewRecorder 创建审计记录器（计数器从0开始）
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record 追加一条审计记录并返回。条目创建后不可修改、不可删除。
func (r *Recorder) Record(module, action, actor, details, severity string) entity.AuditEntry {
	if severity == "" {
		severity = entity.SeverityInfo
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	entry := entity.AuditEntry{
		ID:        fmt.Sprintf("AUD-%04d", r.seq),
		Timestamp: time.Now(),
		Module:    module,
		Action:    action,
		Actor:     actor,
		Details:   details,
		Severity:  severity,
	}

	// 最近优先排列，便于展示层直接消费
	r.entries = append([]entity.AuditEntry{entry}, r.entries...)
	return entry
}

// Entries 返回审计日志副本（最近优先）
func (r *Recorder) Entries() []entity.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.AuditEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count 当前日志条数
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
