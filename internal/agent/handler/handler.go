package handler

import (
	"github.com/bitfantasy/orderpilot/internal/agent/demo"
	"github.com/bitfantasy/orderpilot/internal/agent/workflow"
	"github.com/gin-gonic/gin"
)

// Handlers 处理器集合
type Handlers struct {
	Workflow *WorkflowHandler
	Demo     *DemoHandler
	SSE      *SSEHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(engine *workflow.Engine, runner *demo.Runner) *Handlers {
	return &Handlers{
		Workflow: NewWorkflowHandler(engine),
		Demo:     NewDemoHandler(runner),
		SSE:      NewSSEHandler(),
	}
}

// === 响应辅助函数 ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}
