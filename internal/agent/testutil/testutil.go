// Package testutil provides helpers for handler-level HTTP tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/bitfantasy/orderpilot/internal/agent/audit"
	"github.com/bitfantasy/orderpilot/internal/agent/workflow"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewEngine creates a workflow engine with a fixed seed and a short
// pricing reply delay suitable for tests.
func NewEngine(seed int64) *workflow.Engine {
	rng := rand.New(rand.NewSource(seed))
	return workflow.NewEngine(zap.NewNop(), audit.NewRecorder(), rng, 10*time.Millisecond)
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a generic map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}
