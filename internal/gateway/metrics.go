package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the gateway's Prometheus collectors.
type Metrics struct {
	// IngestedTotal counts bus messages processed, by topic category.
	IngestedTotal *prometheus.CounterVec
	// MalformedTotal counts payloads dropped as undecodable.
	MalformedTotal prometheus.Counter
	// ViolationsTotal counts comfort violations, by sensor type.
	ViolationsTotal *prometheus.CounterVec
	// EdgeAlertsTotal counts edge-rule alerts raised.
	EdgeAlertsTotal prometheus.Counter
	// FanoutDropsTotal counts observer events dropped on a full queue.
	FanoutDropsTotal prometheus.Counter
	// Observers tracks currently connected push observers.
	Observers prometheus.Gauge
}

// NewMetrics creates and registers the gateway collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		IngestedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smartroom",
			Subsystem: "gateway",
			Name:      "messages_ingested_total",
			Help:      "Bus messages processed by the aggregator.",
		}, []string{"category"}),
		MalformedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "smartroom",
			Subsystem: "gateway",
			Name:      "messages_malformed_total",
			Help:      "Payloads dropped because they could not be decoded.",
		}),
		ViolationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smartroom",
			Subsystem: "gateway",
			Name:      "comfort_violations_total",
			Help:      "Sensor readings observed outside their comfort range.",
		}, []string{"sensor_type"}),
		EdgeAlertsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "smartroom",
			Subsystem: "gateway",
			Name:      "edge_alerts_total",
			Help:      "Immediate alerts raised by gateway edge rules.",
		}),
		FanoutDropsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "smartroom",
			Subsystem: "gateway",
			Name:      "fanout_drops_total",
			Help:      "Observer events dropped because the fan-out queue was full.",
		}),
		Observers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "smartroom",
			Subsystem: "gateway",
			Name:      "observers_connected",
			Help:      "Currently connected push observers.",
		}),
	}
}
