package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitfantasy/orderpilot/internal/agent/audit"
	"github.com/bitfantasy/orderpilot/internal/agent/demo"
	"github.com/bitfantasy/orderpilot/internal/agent/handler"
	"github.com/bitfantasy/orderpilot/internal/agent/workflow"
	"github.com/bitfantasy/orderpilot/internal/config"
	"github.com/bitfantasy/orderpilot/internal/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting orderpilot service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化流程引擎与演示执行器
	recorder := audit.NewRecorder()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine := workflow.NewEngine(zapLogger, recorder, rng, cfg.Demo.PricingReplyDelay)
	runner := demo.NewRunner(zapLogger, engine, cfg.Demo.StepDelay)

	handlers := handler.NewHandlers(engine, runner)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// 注册路由
	registerRoutes(router, handlers)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: 0, // Disable for SSE long-lived connections
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func registerRoutes(r *gin.Engine, h *handler.Handlers) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": Version})
	})

	api := r.Group("/api/v1")
	{
		// 状态与目录
		api.GET("/state", h.Workflow.GetState)
		api.GET("/audit", h.Workflow.GetAudit)
		api.GET("/kpis", h.Workflow.GetKPIs)
		api.GET("/catalog/skus", h.Workflow.ListSKUs)
		api.GET("/catalog/suppliers", h.Workflow.ListSuppliers)
		api.GET("/catalog/forwarders", h.Workflow.ListForwarders)

		// 流程转换
		wf := api.Group("/workflow")
		{
			wf.POST("/forecast", h.Workflow.Forecast)
			wf.POST("/pr", h.Workflow.CreatePR)
			wf.POST("/pricing-request", h.Workflow.RequestPricing)
			wf.POST("/signoff", h.Workflow.HumanSignoff)
			wf.POST("/route-approval", h.Workflow.RouteApproval)
			wf.POST("/approve", h.Workflow.Approve)
			wf.POST("/po/send", h.Workflow.SendPO)
			wf.POST("/escalation", h.Workflow.SupplierEscalation)
			wf.POST("/forwarder-quotes", h.Workflow.RequestForwarderQuotes)
			wf.POST("/forwarder-select", h.Workflow.SelectForwarder)
			wf.POST("/delivery/sync", h.Workflow.SyncDelivery)
			wf.POST("/delivery/partial", h.Workflow.PartialDelivery)
			wf.POST("/grn", h.Workflow.GenerateGRN)
			wf.POST("/invoice/import", h.Workflow.ImportInvoice)
			wf.POST("/invoice/match", h.Workflow.ThreeWayMatch)
			wf.POST("/payment", h.Workflow.ExecutePayment)
		}

		// 演示控制
		api.POST("/demo/run", h.Demo.Run)
		api.POST("/demo/stop", h.Demo.Stop)
		api.GET("/demo/status", h.Demo.Status)

		// SSE事件流
		api.GET("/sse/events", h.SSE.Stream)
	}
}
