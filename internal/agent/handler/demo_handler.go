package handler

import (
	"github.com/bitfantasy/orderpilot/internal/agent/demo"
	"github.com/gin-gonic/gin"
)

// DemoHandler 演示控制处理器
type DemoHandler struct {
	runner *demo.Runner
}

func NewDemoHandler(runner *demo.Runner) *DemoHandler {
	return &DemoHandler{runner: runner}
}

// Run 启动完整流程演示
// POST /api/v1/demo/run
func (h *DemoHandler) Run(c *gin.Context) {
	if !h.runner.Run() {
		Conflict(c, "演示已在进行中")
		return
	}
	Success(c, gin.H{"running": true})
}

// Stop 请求停止演示
// POST /api/v1/demo/stop
func (h *DemoHandler) Stop(c *gin.Context) {
	h.runner.Stop()
	Success(c, gin.H{"running": h.runner.Running()})
}

// Status 演示状态
// GET /api/v1/demo/status
func (h *DemoHandler) Status(c *gin.Context) {
	Success(c, gin.H{"running": h.runner.Running()})
}
