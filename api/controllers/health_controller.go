/*
 * @module api/controllers/health_controller
 * @description 健康检查控制器，提供存活与就绪探针
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 请求接收 -> 状态响应
 * @rules 探针无外部依赖，审计引擎无持久状态可检查
 * @dependencies net/http, github.com/go-chi/render
 * @refs api/routes.go
 */

package controllers

import (
	"net/http"

	"github.com/go-chi/render"
)

// HealthController 健康检查控制器
type HealthController struct{}

// NewHealthController 创建健康检查控制器实例
func NewHealthController() *HealthController {
	return &HealthController{}
}

// Health 存活探针
// @Summary 存活检查
// @Tags 系统
// @Produce json
// @Success 200 {object} APIResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, SuccessResponse("ok", nil))
}

// Ready 就绪探针
// @Summary 就绪检查
// @Tags 系统
// @Produce json
// @Success 200 {object} APIResponse
// @Router /ready [get]
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, SuccessResponse("ready", nil))
}
