package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bitfantasy/orderpilot/internal/agent/demo"
	"github.com/bitfantasy/orderpilot/internal/agent/testutil"
	"github.com/bitfantasy/orderpilot/internal/agent/workflow"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func setupWorkflowTest(t *testing.T) (*gin.Engine, *workflow.Engine) {
	t.Helper()
	engine := testutil.NewEngine(42)
	runner := demo.NewRunner(zap.NewNop(), engine, 5*time.Millisecond)
	handlers := NewHandlers(engine, runner)

	router := testutil.SetupRouter()
	api := router.Group("/api/v1")
	api.GET("/state", handlers.Workflow.GetState)
	api.GET("/audit", handlers.Workflow.GetAudit)
	api.GET("/kpis", handlers.Workflow.GetKPIs)
	api.GET("/catalog/skus", handlers.Workflow.ListSKUs)
	api.GET("/catalog/suppliers", handlers.Workflow.ListSuppliers)
	api.GET("/catalog/forwarders", handlers.Workflow.ListForwarders)

	wf := api.Group("/workflow")
	wf.POST("/forecast", handlers.Workflow.Forecast)
	wf.POST("/pr", handlers.Workflow.CreatePR)
	wf.POST("/pricing-request", handlers.Workflow.RequestPricing)
	wf.POST("/signoff", handlers.Workflow.HumanSignoff)
	wf.POST("/route-approval", handlers.Workflow.RouteApproval)
	wf.POST("/approve", handlers.Workflow.Approve)
	wf.POST("/po/send", handlers.Workflow.SendPO)
	wf.POST("/escalation", handlers.Workflow.SupplierEscalation)
	wf.POST("/forwarder-quotes", handlers.Workflow.RequestForwarderQuotes)
	wf.POST("/forwarder-select", handlers.Workflow.SelectForwarder)
	wf.POST("/delivery/sync", handlers.Workflow.SyncDelivery)
	wf.POST("/delivery/partial", handlers.Workflow.PartialDelivery)
	wf.POST("/grn", handlers.Workflow.GenerateGRN)
	wf.POST("/invoice/import", handlers.Workflow.ImportInvoice)
	wf.POST("/invoice/match", handlers.Workflow.ThreeWayMatch)
	wf.POST("/payment", handlers.Workflow.ExecutePayment)

	api.POST("/demo/run", handlers.Demo.Run)
	api.POST("/demo/stop", handlers.Demo.Stop)
	api.GET("/demo/status", handlers.Demo.Status)

	return router, engine
}

func TestForecastEndpoint(t *testing.T) {
	router, _ := setupWorkflowTest(t)

	w := testutil.DoRequest(router, "POST", "/api/v1/workflow/forecast", map[string]interface{}{
		"sku_id": "SKU-001",
		"month":  "March 2026",
		"budget": 25000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing data in response: %v", resp)
	}
	if data["sku_id"] != "SKU-001" {
		t.Errorf("expected sku_id SKU-001, got %v", data["sku_id"])
	}
	conf, _ := data["confidence"].(float64)
	if conf < 70 || conf > 95 {
		t.Errorf("confidence %v out of range", data["confidence"])
	}
}

func TestForecastEndpointValidation(t *testing.T) {
	router, _ := setupWorkflowTest(t)

	// 缺少必填字段
	w := testutil.DoRequest(router, "POST", "/api/v1/workflow/forecast", map[string]interface{}{
		"sku_id": "SKU-001",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing fields, got %d", w.Code)
	}

	// 未知SKU
	w = testutil.DoRequest(router, "POST", "/api/v1/workflow/forecast", map[string]interface{}{
		"sku_id": "SKU-999",
		"month":  "March 2026",
		"budget": 25000,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown SKU, got %d", w.Code)
	}
}

func TestCreatePRPrecondition(t *testing.T) {
	router, _ := setupWorkflowTest(t)

	w := testutil.DoRequest(router, "POST", "/api/v1/workflow/pr", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 without forecast, got %d", w.Code)
	}
}

func TestWorkflowSequenceViaHTTP(t *testing.T) {
	router, engine := setupWorkflowTest(t)

	post := func(path string, body interface{}, wantCode int) {
		t.Helper()
		w := testutil.DoRequest(router, "POST", path, body)
		if w.Code != wantCode {
			t.Fatalf("POST %s: expected %d, got %d: %s", path, wantCode, w.Code, w.Body.String())
		}
	}

	post("/api/v1/workflow/forecast", map[string]interface{}{
		"sku_id": "SKU-001", "month": "March 2026", "budget": 25000,
	}, http.StatusOK)
	post("/api/v1/workflow/pr", nil, http.StatusCreated)
	post("/api/v1/workflow/pricing-request", nil, http.StatusOK)

	// 等待延迟的定价回复
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(engine.Snapshot().PRs) > 0 && engine.Snapshot().PRs[0].Status == "pricing_received" {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	post("/api/v1/workflow/signoff", nil, http.StatusOK)
	post("/api/v1/workflow/route-approval", map[string]interface{}{"threshold": 5}, http.StatusOK)
	post("/api/v1/workflow/approve", map[string]interface{}{"role": "manager"}, http.StatusCreated)
	post("/api/v1/workflow/po/send", nil, http.StatusOK)
	post("/api/v1/workflow/forwarder-quotes", nil, http.StatusOK)
	post("/api/v1/workflow/forwarder-select", map[string]interface{}{"quote_id": "FQ-003"}, http.StatusOK)
	post("/api/v1/workflow/delivery/sync", nil, http.StatusOK)
	post("/api/v1/workflow/delivery/sync", nil, http.StatusOK)
	post("/api/v1/workflow/grn", nil, http.StatusOK)
	post("/api/v1/workflow/invoice/import", nil, http.StatusCreated)
	post("/api/v1/workflow/invoice/match", nil, http.StatusOK)
	post("/api/v1/workflow/payment", map[string]interface{}{"payment_term": "full_sight"}, http.StatusOK)

	// 重复付款被拒
	post("/api/v1/workflow/payment", nil, http.StatusConflict)

	w := testutil.DoRequest(router, "GET", "/api/v1/state", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET state failed: %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["stage"] != "complete" {
		t.Errorf("expected complete stage, got %v", data["stage"])
	}
	order, ok := data["stage_order"].([]interface{})
	if !ok || len(order) != 8 {
		t.Errorf("snapshot should expose the 8-stage progression order, got %v", data["stage_order"])
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/audit", nil)
	resp = testutil.ParseResponse(w)
	entries, ok := resp["data"].([]interface{})
	if !ok || len(entries) == 0 {
		t.Error("audit log should not be empty after a full run")
	}
}

func TestRouteApprovalExplicitZeroThreshold(t *testing.T) {
	router, engine := setupWorkflowTest(t)

	post := func(path string, body interface{}, wantCode int) {
		t.Helper()
		w := testutil.DoRequest(router, "POST", path, body)
		if w.Code != wantCode {
			t.Fatalf("POST %s: expected %d, got %d: %s", path, wantCode, w.Code, w.Body.String())
		}
	}

	post("/api/v1/workflow/forecast", map[string]interface{}{
		"sku_id": "SKU-001", "month": "March 2026", "budget": 25000,
	}, http.StatusOK)
	post("/api/v1/workflow/pr", nil, http.StatusCreated)

	// 显式传0不能被改写为默认阈值
	post("/api/v1/workflow/route-approval", map[string]interface{}{"threshold": 0}, http.StatusOK)

	found := false
	for _, e := range engine.Recorder().Entries() {
		if e.Action == "Routed for Approval" {
			found = true
			if !strings.Contains(e.Details, "threshold: 0%") {
				t.Errorf("explicit zero threshold was rewritten: %s", e.Details)
			}
		}
	}
	if !found {
		t.Fatal("missing routing audit entry")
	}
}

func TestCatalogEndpoints(t *testing.T) {
	router, _ := setupWorkflowTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/catalog/skus", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	skus, ok := resp["data"].([]interface{})
	if !ok || len(skus) != 6 {
		t.Errorf("expected 6 SKUs, got %d", len(skus))
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/catalog/suppliers", nil)
	resp = testutil.ParseResponse(w)
	suppliers, ok := resp["data"].([]interface{})
	if !ok || len(suppliers) != 5 {
		t.Errorf("expected 5 suppliers, got %d", len(suppliers))
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/catalog/forwarders", nil)
	resp = testutil.ParseResponse(w)
	forwarders, ok := resp["data"].([]interface{})
	if !ok || len(forwarders) != 3 {
		t.Errorf("expected 3 forwarder quotes, got %d", len(forwarders))
	}
}

func TestKPIsEndpoint(t *testing.T) {
	router, _ := setupWorkflowTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/kpis", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing data: %v", resp)
	}
	if _, exists := data["forecast_accuracy"]; !exists {
		t.Error("KPI snapshot missing forecast_accuracy")
	}
}

func TestDemoEndpoints(t *testing.T) {
	router, engine := setupWorkflowTest(t)

	w := testutil.DoRequest(router, "POST", "/api/v1/demo/run", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("demo run failed: %d", w.Code)
	}

	// 运行中重复启动被拒
	w = testutil.DoRequest(router, "POST", "/api/v1/demo/run", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for concurrent demo run, got %d", w.Code)
	}

	// 等待演示结束
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		w = testutil.DoRequest(router, "GET", "/api/v1/demo/status", nil)
		resp := testutil.ParseResponse(w)
		data := resp["data"].(map[string]interface{})
		if data["running"] == false {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if engine.Stage() != "complete" {
		t.Errorf("demo should complete the workflow, stage: %s", engine.Stage())
	}
}
