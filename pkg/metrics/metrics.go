package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blog", Name: "http_requests_total", Help: "Number of handled HTTP requests by method and status."},
		[]string{"method", "status"},
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blog", Name: "login_attempts_total", Help: "Number of admin login attempts by result."},
		[]string{"result"},
	)
	PostMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blog", Name: "post_mutations_total", Help: "Number of successful post mutations by operation."},
		[]string{"op"},
	)
	ImageUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blog", Name: "image_uploads_total", Help: "Number of image uploads by storage backend and result."},
		[]string{"backend", "result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(LoginAttempts)
	reg.MustRegister(PostMutations)
	reg.MustRegister(ImageUploads)
}
