// internal/contact/metrics.go

package contact

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var contactSubmissions = promauto.NewCounter(prometheus.CounterOpts{
	Name: "contact_submissions_total",
	Help: "Total contact form submissions",
})

func recordSubmission() {
	contactSubmissions.Inc()
}
