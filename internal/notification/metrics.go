// internal/notification/metrics.go

package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "notification_events_total",
	Help: "Notification events by type and outcome.",
}, []string{"type", "outcome"})

func recordNotification(notifType, outcome string) {
	notificationsTotal.WithLabelValues(notifType, outcome).Inc()
}
