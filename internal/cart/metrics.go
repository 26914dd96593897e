package cart

import "github.com/prometheus/client_golang/prometheus"

const (
	opAdd    = "add"
	opChange = "change_quantity"
	opRemove = "remove"
	opPrune  = "prune"

	resultOK    = "ok"
	resultNoop  = "noop"
	resultError = "error"
)

type Metrics struct {
	Mutations *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "teeshop",
				Name:      "cart_mutations_total",
				Help:      "Cart mutations by operation and outcome",
			},
			[]string{"op", "result"},
		),
	}
	reg.MustRegister(m.Mutations)
	return m
}

func (m *Metrics) observe(op, result string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(op, result).Inc()
}
