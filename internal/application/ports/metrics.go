package ports

// MetricsRecorder registra contadores de negocio. La implementación Prometheus vive en
// infrastructure/metrics; NoopMetrics sirve para tests y herramientas.
type MetricsRecorder interface {
	StockMutation(direction string)
	ProductionRun(ingredientLines int)
	Checkout(status string, total int64)
	RoomClosed(reason string)
}

// NoopMetrics no registra nada.
type NoopMetrics struct{}

func (NoopMetrics) StockMutation(string)   {}
func (NoopMetrics) ProductionRun(int)      {}
func (NoopMetrics) Checkout(string, int64) {}
func (NoopMetrics) RoomClosed(string)      {}
