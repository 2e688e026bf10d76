/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs api/controllers
 */

package api

import (
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"dataaudit-service/api/controllers"
	"dataaudit-service/service/audit"
)

var (
	schemasDir = "data/schemas"
	samplesDir = "data/samples"
)

func init() {
	if val := os.Getenv("SCHEMAS_DIR"); val != "" {
		schemasDir = val
	}
	if val := os.Getenv("SAMPLES_DIR"); val != "" {
		samplesDir = val
	}
}

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController()
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// 审计引擎
	auditController := controllers.NewAuditController(audit.NewService(), samplesDir)
	r.Route("/audit", func(r chi.Router) {
		r.Post("/full", auditController.FullAudit)
		r.Post("/profile", auditController.Profile)
		r.Post("/pii", auditController.PIIScan)
		r.Post("/outliers", auditController.Outliers)
		r.Post("/readiness", auditController.Readiness)
		r.Post("/model-suitability", auditController.ModelSuitability)
		r.Post("/dashboard", auditController.Dashboard)
		r.Get("/samples", auditController.ListSamples)
	})

	// 数据桥接
	bridgeController := controllers.NewBridgeController(auditController, schemasDir)
	r.Route("/bridge", func(r chi.Router) {
		r.Get("/schemas", bridgeController.ListSchemas)
		r.Post("/recommend", bridgeController.Recommend)
		r.Post("/transform", bridgeController.Transform)
		r.Post("/export", bridgeController.Export)
	})
}
