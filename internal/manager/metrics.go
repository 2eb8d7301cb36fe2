package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	modelDownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swapman",
			Subsystem: "models",
			Name:      "downloads_total",
			Help:      "Background model downloads by result",
		},
		[]string{"result"},
	)

	upstreamProbesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swapman",
			Subsystem: "upstream",
			Name:      "probes_total",
			Help:      "Swap service listing probes by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(modelDownloadsTotal, upstreamProbesTotal)
}
