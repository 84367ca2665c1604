package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics содержит метрики корзины и отправки заказов.
type CartMetrics struct {
	// Счётчики операций с корзиной
	itemsAdded   prometheus.Counter
	linesRemoved prometheus.Counter
	cartLines    prometheus.Gauge

	// Отправка заказов
	submissions     *prometheus.CounterVec
	submitDuration  prometheus.Histogram
	submitsInFlight prometheus.Gauge
}

// NewCartMetrics создаёт метрики в глобальном реестре Prometheus.
func NewCartMetrics() *CartMetrics {
	return NewCartMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewCartMetricsWithRegisterer создаёт метрики в указанном реестре.
func NewCartMetricsWithRegisterer(registerer prometheus.Registerer) *CartMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CartMetrics{
		itemsAdded: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bistro_cart_items_added_total",
			Help: "Total number of items added to the cart",
		}),
		linesRemoved: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bistro_cart_lines_removed_total",
			Help: "Total number of cart lines removed",
		}),
		cartLines: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "bistro_cart_lines",
			Help: "Number of distinct lines currently in the cart",
		}),
		submissions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "bistro_order_submissions_total",
			Help: "Total number of order submissions by outcome",
		}, []string{"outcome"}),
		submitDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "bistro_order_submit_duration_seconds",
			Help:    "Duration of order submission round trips in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}),
		submitsInFlight: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "bistro_order_submissions_in_flight",
			Help: "Number of order submissions awaiting a backend response",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordItemAdded увеличивает счётчик добавленных единиц.
func (m *CartMetrics) RecordItemAdded() {
	if m == nil {
		return
	}
	m.itemsAdded.Inc()
}

// RecordLineRemoved увеличивает счётчик удалённых позиций.
func (m *CartMetrics) RecordLineRemoved() {
	if m == nil {
		return
	}
	m.linesRemoved.Inc()
}

// SetCartLines выставляет текущее число позиций.
func (m *CartMetrics) SetCartLines(n int) {
	if m == nil {
		return
	}
	m.cartLines.Set(float64(n))
}

// RecordSubmitStarted увеличивает число отправок в полёте.
func (m *CartMetrics) RecordSubmitStarted() {
	if m == nil {
		return
	}
	m.submitsInFlight.Inc()
}

// RecordSubmitFinished фиксирует исход и длительность отправки.
func (m *CartMetrics) RecordSubmitFinished(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.submitsInFlight.Dec()
	m.submitDuration.Observe(duration.Seconds())
	m.submissions.WithLabelValues(outcome).Inc()
}

// RecordSubmitRejected фиксирует отправку, отклонённую до сетевого запроса.
func (m *CartMetrics) RecordSubmitRejected(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}
