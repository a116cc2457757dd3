package memberid

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var allocationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "memberid_allocations_total",
		Help: "Member ID allocation attempts by outcome",
	},
	[]string{"outcome"},
)

func recordAllocation(outcome string) {
	allocationsTotal.WithLabelValues(outcome).Inc()
}
