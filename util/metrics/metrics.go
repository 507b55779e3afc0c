// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blog_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	LoginSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blog_login_success_total",
		Help: "Total successful login attempts",
	})

	LoginFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_login_failure_total",
		Help: "Total failed login attempts",
	}, []string{"reason"})

	RegisterSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blog_register_success_total",
		Help: "Total accounts registered",
	})

	CommentsPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blog_comments_posted_total",
		Help: "Total comments stored",
	})

	PostsWritten = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_posts_written_total",
		Help: "Total admin post mutations",
	}, []string{"action"})

	Forbidden = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blog_forbidden_total",
		Help: "Requests rejected by the admin gate",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		LoginSuccess,
		LoginFailure,
		RegisterSuccess,
		CommentsPosted,
		PostsWritten,
		Forbidden,
	)
}
