package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pantry"

// Collector 推薦服務的 Prometheus 指標，使用獨立的 registry
type Collector struct {
	registry *prometheus.Registry

	rankingDuration prometheus.Histogram
	catalogSize     prometheus.Gauge
	recipesFound    prometheus.Histogram
	cacheRequests   *prometheus.CounterVec
	sourceErrors    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewCollector 創建並註冊所有指標
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		rankingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_duration_seconds",
			Help:      "Duration of a recommendation ranking pass",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		catalogSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_recipes",
			Help:      "Number of recipes in the last ranked catalog",
		}),
		recipesFound: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendations_found",
			Help:      "Number of recipes passing the filters per ranking pass",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		}),
		cacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Recommendation cache lookups by result",
		}, []string{"result"}),
		sourceErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_errors_total",
			Help:      "Failed reads from the pantry, preferences or catalog source",
		}, []string{"operation"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// Registry 回傳底層 registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRanking 記錄一次排名
func (c *Collector) ObserveRanking(duration time.Duration, catalogSize, found int) {
	c.rankingDuration.Observe(duration.Seconds())
	c.catalogSize.Set(float64(catalogSize))
	c.recipesFound.Observe(float64(found))
}

// ObserveCache 記錄快取命中或未命中
func (c *Collector) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheRequests.WithLabelValues(result).Inc()
}

// ObserveSourceError 記錄資料來源讀取失敗
func (c *Collector) ObserveSourceError(operation string) {
	c.sourceErrors.WithLabelValues(operation).Inc()
}

// Middleware 記錄每個請求的路由、狀態與延遲
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.httpRequests.WithLabelValues(route, method, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.httpDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// Handler 輸出 /metrics
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
