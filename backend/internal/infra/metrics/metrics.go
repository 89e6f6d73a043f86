package metrics

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registerOnce           sync.Once
	httpRequests           *prometheus.CounterVec
	httpRequestDuration    *prometheus.HistogramVec
	defaultDurationBuckets = prometheus.DefBuckets
)

const namespaceMetrics = "gamecrowd"

// MustRegister 初始化 Prometheus 指标并注册 Go 运行时采样器，需在应用启动阶段调用一次。
func MustRegister() {
	registerOnce.Do(func() {
		httpRequests = registerCounterVec(
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespaceMetrics,
					Subsystem: "http",
					Name:      "requests_total",
					Help:      "REST 接口的调用次数，按方法、路由与状态码统计。",
				},
				[]string{"method", "route", "status"},
			),
		)
		httpRequestDuration = registerHistogramVec(
			prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: namespaceMetrics,
					Subsystem: "http",
					Name:      "request_duration_seconds",
					Help:      "REST 接口的处理耗时，按路由区分。",
					Buckets:   defaultDurationBuckets,
				},
				[]string{"route"},
			),
		)

		registerRuntimeCollectors()
	})
}

// ObserveHTTPRequest 记录一次请求的结果与耗时，route 为空的请求（404 散射）归并为 unmatched。
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if httpRequests == nil || httpRequestDuration == nil {
		return
	}
	routeLabel := normalizeLabel(route, "unmatched")
	httpRequests.WithLabelValues(normalizeLabel(method, "unknown"), routeLabel, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(routeLabel).Observe(duration.Seconds())
}

func normalizeLabel(value string, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func registerCounterVec(vec *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
		panic(err)
	}
	return vec
}

func registerHistogramVec(vec *prometheus.HistogramVec) *prometheus.HistogramVec {
	if err := prometheus.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing
			}
		}
		panic(err)
	}
	return vec
}

func registerRuntimeCollectors() {
	if err := prometheus.Register(collectors.NewGoCollector()); err != nil && !isAlreadyRegistered(err) {
		panic(err)
	}
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil && !isAlreadyRegistered(err) {
		panic(err)
	}
}

func isAlreadyRegistered(err error) bool {
	_, ok := err.(prometheus.AlreadyRegisteredError)
	return ok
}
