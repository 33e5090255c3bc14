package extract

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Extractions counts chain outcomes by the strategy that decided them.
var Extractions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "giglist_extractions_total",
		Help: "Total number of event page extractions by strategy and outcome",
	},
	[]string{"strategy", "outcome"}, // outcome: "ok", "error", "empty"
)
