/*
 * @module api/controllers/metrics
 * @description 审计服务Prometheus指标定义
 * @architecture 可观测层 - promauto注册到默认Registry，经/metrics暴露
 * @documentReference ai_docs/audit_engine_design.md
 * @stateFlow 控制器埋点 -> 默认Registry -> /metrics抓取
 * @rules 指标只增不改语义，标签基数受控（仅审计类型）
 * @dependencies github.com/prometheus/client_golang/prometheus
 * @refs main.go, api/controllers/audit_controller.go
 */

package controllers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	auditsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dataaudit_audits_total",
		Help: "已执行的审计次数，按审计类型区分",
	}, []string{"kind"})

	loadFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataaudit_load_failures_total",
		Help: "数据集加载失败次数",
	})

	auditDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dataaudit_audit_duration_seconds",
		Help:    "单次审计耗时分布",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
)
