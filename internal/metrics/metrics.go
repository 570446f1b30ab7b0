package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 采集流水线指标：按数据源/结果维度打点，挂在 /metrics 上
var (
	NoticesFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tendersync_notices_fetched_total",
		Help: "拉取到的公告文档总数（按数据源）",
	}, []string{"source"})

	MergeOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tendersync_merge_outcomes_total",
		Help: "合并结果总数（inserted/updated/unchanged，按数据源）",
	}, []string{"source", "outcome"})

	NoticesSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tendersync_notices_skipped_total",
		Help: "被行业过滤跳过的公告总数（按数据源）",
	}, []string{"source"})

	DocErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tendersync_doc_errors_total",
		Help: "单文档解析/入库失败总数（按数据源）",
	}, []string{"source"})

	RunDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tendersync_run_duration_seconds",
		Help:    "单次采集运行耗时（秒，按数据源）",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	}, []string{"source"})
)

func init() {
	prometheus.MustRegister(
		NoticesFetched,
		MergeOutcomes,
		NoticesSkipped,
		DocErrors,
		RunDuration,
	)
}
