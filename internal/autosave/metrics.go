package autosave

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autosave_submits_total",
			Help: "Autosave requests accepted into the debounce queue",
		},
		[]string{"kind"},
	)

	writesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autosave_writes_total",
			Help: "Coalesced autosave writes by result",
		},
		[]string{"kind", "result"},
	)

	pendingGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "autosave_pending",
			Help: "Drafts waiting for their debounce window to close",
		},
	)
)
