// Package metrics provides Prometheus metrics for the normalizer
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RecordsNormalized 成功归一化的记录数
	RecordsNormalized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "txn_records_normalized_total",
		Help: "Number of records successfully normalized",
	})

	// RecordsSkipped 按原因统计的跳过记录数
	RecordsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "txn_records_skipped_total",
		Help: "Number of records skipped, by reason",
	}, []string{"reason"})

	// FormatsInferred 推断出的日期格式数
	FormatsInferred = promauto.NewCounter(prometheus.CounterOpts{
		Name: "txn_date_formats_inferred_total",
		Help: "Number of date formats inferred from sample batches",
	})

	// BatchDuration 单批归一化耗时
	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "txn_batch_duration_seconds",
		Help:    "Time spent normalizing one batch of records",
		Buckets: prometheus.DefBuckets,
	})
)

// StartMetricsServer 启动Prometheus指标服务器
func StartMetricsServer(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(addr, nil)
	}()
}
