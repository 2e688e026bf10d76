/*
 * @module api/controllers/audit_controller
 * @description 审计控制器，接收上传数据集并返回各类审计报告
 * @architecture MVC架构 - 控制器层，加载失败立即阻断后续审计步骤
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 文件接收 -> 数据集加载 -> 审计执行 -> 报告响应
 * @rules 每次请求独立加载、独立审计，引擎不保留任何跨请求状态
 * @dependencies dataaudit-service/service/audit, dataaudit-service/service/dataset, github.com/go-chi/render
 * @refs service/audit/audit_service.go
 */

package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/render"

	"dataaudit-service/service/audit"
	"dataaudit-service/service/dataset"
	"dataaudit-service/service/models"
)

// uploadMemoryLimit 上传表单的内存解析上限
const uploadMemoryLimit = 64 << 20

// AuditController 审计控制器
type AuditController struct {
	auditService *audit.Service
	samplesDir   string
}

// NewAuditController 创建审计控制器实例
func NewAuditController(auditService *audit.Service, samplesDir string) *AuditController {
	return &AuditController{auditService: auditService, samplesDir: samplesDir}
}

// loadDataset 从上传文件或样例名加载数据集
// 加载失败报告一次，调用方直接返回，后续审计步骤不再执行
func (c *AuditController) loadDataset(r *http.Request) (*models.Dataset, error) {
	if sample := r.URL.Query().Get("sample"); sample != "" {
		return dataset.LoadFile(filepath.Join(c.samplesDir, filepath.Base(sample)))
	}

	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		return nil, fmt.Errorf("上传表单解析失败: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("缺少上传文件: %w", err)
	}
	defer file.Close()

	return dataset.Load(file, header.Filename)
}

// respondLoadError 加载错误统一响应
func respondLoadError(w http.ResponseWriter, r *http.Request, err error) {
	loadFailuresTotal.Inc()
	if errors.Is(err, dataset.ErrUnsupportedFormat) {
		render.JSON(w, r, BadRequestResponse("不支持的文件格式", err))
		return
	}
	render.JSON(w, r, BadRequestResponse("数据集加载失败", err))
}

// FullAudit 执行全量审计
// @Summary 全量数据审计
// @Description 上传数据集文件（或指定样例），执行画像、PII扫描、异常检测与全部评分
// @Tags 审计
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "CSV或Excel文件"
// @Param sample query string false "样例文件名"
// @Success 200 {object} APIResponse{data=models.AuditReport}
// @Failure 400 {object} APIResponse
// @Router /audit/full [post]
func (c *AuditController) FullAudit(w http.ResponseWriter, r *http.Request) {
	ds, err := c.loadDataset(r)
	if err != nil {
		respondLoadError(w, r, err)
		return
	}

	start := time.Now()
	report := c.auditService.RunFullAudit(ds)
	auditsTotal.WithLabelValues("full").Inc()
	auditDuration.WithLabelValues("full").Observe(time.Since(start).Seconds())

	render.JSON(w, r, SuccessResponse("审计完成", report))
}

// Profile 列画像
// @Summary 列画像
// @Tags 审计
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "CSV或Excel文件"
// @Param sample query string false "样例文件名"
// @Success 200 {object} APIResponse{data=map[string]models.ColumnProfile}
// @Failure 400 {object} APIResponse
// @Router /audit/profile [post]
func (c *AuditController) Profile(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, "profile", func(ds *models.Dataset) interface{} {
		return audit.Profile(ds, c.auditService.ProfilerConfig())
	})
}

// PIIScan PII扫描
// @Summary PII扫描
// @Tags 审计
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "CSV或Excel文件"
// @Param sample query string false "样例文件名"
// @Success 200 {object} APIResponse{data=map[string]string}
// @Failure 400 {object} APIResponse
// @Router /audit/pii [post]
func (c *AuditController) PIIScan(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, "pii", func(ds *models.Dataset) interface{} {
		return audit.ScanForPII(ds, c.auditService.ScannerConfig())
	})
}

// Outliers 异常检测
// @Summary 双方法异常检测
// @Tags 审计
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "CSV或Excel文件"
// @Param sample query string false "样例文件名"
// @Success 200 {object} APIResponse{data=models.OutlierReport}
// @Failure 400 {object} APIResponse
// @Router /audit/outliers [post]
func (c *AuditController) Outliers(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, "outliers", func(ds *models.Dataset) interface{} {
		return audit.DetectAnomalies(ds)
	})
}

// Readiness 就绪评分
// @Summary 数据就绪评分
// @Tags 审计
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "CSV或Excel文件"
// @Param sample query string false "样例文件名"
// @Success 200 {object} APIResponse{data=models.ReadinessScore}
// @Failure 400 {object} APIResponse
// @Router /audit/readiness [post]
func (c *AuditController) Readiness(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, "readiness", func(ds *models.Dataset) interface{} {
		return audit.CalculateReadinessScore(ds)
	})
}

// ModelSuitability 模型适配评估
// @Summary 模型适配评估
// @Tags 审计
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "CSV或Excel文件"
// @Param sample query string false "样例文件名"
// @Success 200 {object} APIResponse{data=map[string]models.ModelSuitability}
// @Failure 400 {object} APIResponse
// @Router /audit/model-suitability [post]
func (c *AuditController) ModelSuitability(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, "model_suitability", func(ds *models.Dataset) interface{} {
		return audit.AssessModelSuitability(ds)
	})
}

// Dashboard 看板就绪评估
// @Summary 看板就绪评估
// @Tags 审计
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "CSV或Excel文件"
// @Param sample query string false "样例文件名"
// @Success 200 {object} APIResponse{data=models.DashboardReadiness}
// @Failure 400 {object} APIResponse
// @Router /audit/dashboard [post]
func (c *AuditController) Dashboard(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, "dashboard", func(ds *models.Dataset) interface{} {
		classification := audit.Classify(ds, c.auditService.ProfilerConfig())
		return audit.EvaluateDashboardReadiness(ds, classification)
	})
}

// ListSamples 列出可用样例文件
// @Summary 样例文件列表
// @Tags 审计
// @Produce json
// @Success 200 {object} APIResponse{data=[]string}
// @Failure 500 {object} APIResponse
// @Router /audit/samples [get]
func (c *AuditController) ListSamples(w http.ResponseWriter, r *http.Request) {
	names, err := dataset.ListSamples(c.samplesDir)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("样例目录扫描失败", err))
		return
	}
	render.JSON(w, r, SuccessResponse("获取样例列表成功", names))
}

// run 单评估器端点的公共骨架
func (c *AuditController) run(w http.ResponseWriter, r *http.Request, kind string, fn func(*models.Dataset) interface{}) {
	ds, err := c.loadDataset(r)
	if err != nil {
		respondLoadError(w, r, err)
		return
	}

	start := time.Now()
	result := fn(ds)
	auditsTotal.WithLabelValues(kind).Inc()
	auditDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	render.JSON(w, r, SuccessResponse("审计完成", result))
}
