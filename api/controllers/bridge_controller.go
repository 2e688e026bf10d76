/*
 * @module api/controllers/bridge_controller
 * @description 数据桥接控制器，提供模式发现、映射推荐、行级转换与标准化导出
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 模式加载 -> 映射推荐 -> 转换应用 -> 覆盖率门控 -> 导出
 * @rules 必需列覆盖不完整时拒绝导出；模式配置错误仅阻断映射相关端点
 * @dependencies dataaudit-service/service/bridge, dataaudit-service/service/dataset, github.com/go-chi/render
 * @refs service/bridge/*
 */

package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/render"

	"dataaudit-service/service/bridge"
	"dataaudit-service/service/dataset"
	"dataaudit-service/service/models"
)

// BridgeController 数据桥接控制器
type BridgeController struct {
	audit      *AuditController
	schemasDir string
}

// NewBridgeController 创建数据桥接控制器实例
func NewBridgeController(auditController *AuditController, schemasDir string) *BridgeController {
	return &BridgeController{audit: auditController, schemasDir: schemasDir}
}

// loadSchema 按请求参数加载目标模式配置
func (c *BridgeController) loadSchema(r *http.Request) (*models.TargetSchema, error) {
	name := r.URL.Query().Get("schema")
	if name == "" {
		return nil, fmt.Errorf("缺少schema参数")
	}
	return bridge.LoadSchemaConfig(filepath.Join(c.schemasDir, filepath.Base(name)))
}

// ListSchemas 列出可用模式配置
// @Summary 模式配置列表
// @Tags 数据桥接
// @Produce json
// @Success 200 {object} APIResponse{data=[]string}
// @Failure 500 {object} APIResponse
// @Router /bridge/schemas [get]
func (c *BridgeController) ListSchemas(w http.ResponseWriter, r *http.Request) {
	names, err := bridge.ListSchemas(c.schemasDir)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("模式目录扫描失败", err))
		return
	}
	render.JSON(w, r, SuccessResponse("获取模式列表成功", names))
}

// Recommend 映射推荐
// @Summary 模式映射推荐
// @Description 将上传数据集的列对齐到指定目标模式，返回推荐映射与必需列覆盖率
// @Tags 数据桥接
// @Accept multipart/form-data
// @Produce json
// @Param schema query string true "模式配置文件名"
// @Param file formData file false "CSV或Excel文件"
// @Param sample query string false "样例文件名"
// @Success 200 {object} APIResponse{data=models.MappingRecommendation}
// @Failure 400 {object} APIResponse
// @Router /bridge/recommend [post]
func (c *BridgeController) Recommend(w http.ResponseWriter, r *http.Request) {
	schema, err := c.loadSchema(r)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("模式配置加载失败", err))
		return
	}
	ds, err := c.audit.loadDataset(r)
	if err != nil {
		respondLoadError(w, r, err)
		return
	}

	rec := bridge.RecommendMappings(ds, schema)
	render.JSON(w, r, SuccessResponse("映射推荐完成", rec))
}

// Transform 行级转换
// @Summary 行级转换工具
// @Description 对上传数据集应用拆分/填充/匿名化之一，返回转换后的CSV
// @Tags 数据桥接
// @Accept multipart/form-data
// @Produce text/csv
// @Param op query string true "操作" Enums(split,fill,anonymize)
// @Param column query string true "目标列名"
// @Param delimiter query string false "拆分分隔符"
// @Param names query string false "拆分后的新列名（逗号分隔）"
// @Param method query string false "填充方法(static/ffill/mean)或匿名化技术(mask/hash/bins)"
// @Param value query string false "静态填充值"
// @Param file formData file false "CSV或Excel文件"
// @Success 200 {string} string "CSV内容"
// @Failure 400 {object} APIResponse
// @Router /bridge/transform [post]
func (c *BridgeController) Transform(w http.ResponseWriter, r *http.Request) {
	ds, err := c.audit.loadDataset(r)
	if err != nil {
		respondLoadError(w, r, err)
		return
	}

	q := r.URL.Query()
	column := q.Get("column")

	var out *models.Dataset
	switch q.Get("op") {
	case "split":
		names := strings.Split(q.Get("names"), ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		out, err = bridge.SplitColumn(ds, column, q.Get("delimiter"), names)
	case "fill":
		out, err = bridge.FillMissing(ds, column, bridge.FillMethod(q.Get("method")), q.Get("value"))
	case "anonymize":
		out, err = bridge.AnonymizeColumn(ds, column, bridge.AnonymizeMethod(q.Get("method")))
	default:
		err = fmt.Errorf("不支持的操作: %s", q.Get("op"))
	}
	if err != nil {
		render.JSON(w, r, BadRequestResponse("转换失败", err))
		return
	}

	writeCSV(w, r, out, "transformed.csv")
}

// Export 标准化导出
// @Summary 标准化导出
// @Description 推荐映射后按目标模式重命名并投影，必需列覆盖不完整时拒绝
// @Tags 数据桥接
// @Accept multipart/form-data
// @Produce text/csv
// @Param schema query string true "模式配置文件名"
// @Param file formData file false "CSV或Excel文件"
// @Param sample query string false "样例文件名"
// @Success 200 {string} string "CSV内容"
// @Failure 400 {object} APIResponse
// @Router /bridge/export [post]
func (c *BridgeController) Export(w http.ResponseWriter, r *http.Request) {
	schema, err := c.loadSchema(r)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("模式配置加载失败", err))
		return
	}
	ds, err := c.audit.loadDataset(r)
	if err != nil {
		respondLoadError(w, r, err)
		return
	}

	rec := bridge.RecommendMappings(ds, schema)
	if rec.RequiredFound < rec.RequiredTotal {
		render.JSON(w, r, BadRequestResponse(
			fmt.Sprintf("必需列覆盖不完整: %d/%d", rec.RequiredFound, rec.RequiredTotal), nil))
		return
	}

	out := bridge.RenameAndExport(ds, schema, rec.Mappings)
	writeCSV(w, r, out, "ready_for_transport.csv")
}

// writeCSV CSV下载响应
func writeCSV(w http.ResponseWriter, r *http.Request, ds *models.Dataset, filename string) {
	data, err := dataset.ExportCSV(ds)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("CSV导出失败", err))
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
