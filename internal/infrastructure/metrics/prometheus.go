package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/pos-backoffice/internal/application/ports"
)

var _ ports.MetricsRecorder = (*Recorder)(nil)

// Recorder colectores Prometheus del back office, registrados en un registry propio.
type Recorder struct {
	registry *prometheus.Registry

	stockMutations *prometheus.CounterVec
	productionRuns prometheus.Counter
	productionIngr prometheus.Histogram
	checkouts      *prometheus.CounterVec
	revenue        *prometheus.CounterVec
	roomsClosed    *prometheus.CounterVec

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New crea y registra los colectores (incluye los de proceso y runtime de Go).
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		stockMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "ledger",
			Name:      "stock_mutations_total",
			Help:      "Filas agregadas al libro de movimientos",
		}, []string{"direction"}),
		productionRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "production",
			Name:      "runs_total",
			Help:      "Corridas de producción confirmadas",
		}),
		productionIngr: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pos",
			Subsystem: "production",
			Name:      "ingredient_lines",
			Help:      "Ingredientes consumidos por corrida",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "checkout",
			Name:      "sales_total",
			Help:      "Ventas confirmadas por estado de pago",
		}, []string{"status"}),
		revenue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "checkout",
			Name:      "revenue_total",
			Help:      "Suma de totales de venta (unidades enteras de moneda)",
		}, []string{"status"}),
		roomsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "cart",
			Name:      "rooms_closed_total",
			Help:      "Rooms cerrados por motivo",
		}, []string{"reason"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pos",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.stockMutations, r.productionRuns, r.productionIngr,
		r.checkouts, r.revenue, r.roomsClosed,
		r.HTTPRequests, r.HTTPDuration,
	)
	return r
}

func (r *Recorder) StockMutation(direction string) {
	r.stockMutations.WithLabelValues(direction).Inc()
}

func (r *Recorder) ProductionRun(ingredientLines int) {
	r.productionRuns.Inc()
	r.productionIngr.Observe(float64(ingredientLines))
}

func (r *Recorder) Checkout(status string, total int64) {
	r.checkouts.WithLabelValues(status).Inc()
	r.revenue.WithLabelValues(status).Add(float64(total))
}

func (r *Recorder) RoomClosed(reason string) {
	r.roomsClosed.WithLabelValues(reason).Inc()
}

// Handler expone el registry en formato de texto Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer acceso al registry (tests).
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}
