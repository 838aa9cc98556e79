package persistence

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LoadMetrics - Prometheus-метрики построения мира.
// Нулевой указатель допустим: методы тогда ничего не делают.
type LoadMetrics struct {
	builds   prometheus.Counter
	failures *prometheus.CounterVec
	tiles    prometheus.Counter
	duration prometheus.Histogram
}

// NewLoadMetrics создаёт метрики и регистрирует их в reg.
// Тесты передают собственный prometheus.NewRegistry(), чтобы не было двойной регистрации.
func NewLoadMetrics(reg prometheus.Registerer) (*LoadMetrics, error) {
	m := &LoadMetrics{
		builds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "isogame",
			Subsystem: "world",
			Name:      "builds_total",
			Help:      "Число успешно построенных миров.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isogame",
			Subsystem: "world",
			Name:      "build_failures_total",
			Help:      "Неудачные построения мира по виду ошибки.",
		}, []string{"kind"}),
		tiles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "isogame",
			Subsystem: "world",
			Name:      "tiles_built_total",
			Help:      "Число тайлов в успешно построенных мирах.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "isogame",
			Subsystem: "world",
			Name:      "build_duration_seconds",
			Help:      "Длительность построения мира.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}

	for _, c := range []prometheus.Collector{m.builds, m.failures, m.tiles, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveBuild учитывает успешное построение
func (m *LoadMetrics) ObserveBuild(tiles int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.builds.Inc()
	m.tiles.Add(float64(tiles))
	m.duration.Observe(elapsed.Seconds())
}

// ObserveFailure учитывает неудачное построение с меткой вида ошибки
func (m *LoadMetrics) ObserveFailure(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	kind := "internal"
	if k, ok := KindOf(err); ok {
		kind = k.String()
	}
	m.failures.WithLabelValues(kind).Inc()
	m.duration.Observe(elapsed.Seconds())
}
