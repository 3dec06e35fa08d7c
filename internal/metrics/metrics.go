// metrics — Prometheus-коллекторы feed-сервиса (регистрируются в default registry,
// отдаются через /metrics).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_http_requests_total",
			Help: "Общее количество HTTP-запросов",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_http_request_duration_seconds",
			Help:    "Длительность обработки HTTP-запроса (секунды)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	InteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_interactions_total",
			Help: "Записанные реакции по типу",
		},
		[]string{"type"},
	)

	ArticleTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_article_transitions_total",
			Help: "Переходы статей между DRAFT и PUBLISHED",
		},
		[]string{"to"},
	)

	LoginRateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_login_rate_limited_total",
			Help: "Попытки входа, отклонённые ограничителем частоты",
		},
	)
)

func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordInteraction(typ string) {
	InteractionsTotal.WithLabelValues(typ).Inc()
}

func RecordTransition(to string) {
	ArticleTransitionsTotal.WithLabelValues(to).Inc()
}

func RecordLoginRateLimited() {
	LoginRateLimitedTotal.Inc()
}
