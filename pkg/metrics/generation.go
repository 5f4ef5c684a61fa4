package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GenerationMetrics records outcomes for the content generation pipeline.
type GenerationMetrics struct {
	duration  *prometheus.HistogramVec
	generated *prometheus.CounterVec
	fallback  *prometheus.CounterVec
}

// NewGenerationMetrics registers the generation metrics on the provided registerer.
func NewGenerationMetrics(reg prometheus.Registerer) *GenerationMetrics {
	if reg == nil {
		return &GenerationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "generation_stage_duration_seconds",
		Help:    "Duration of generation pipeline stages in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	generated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "generation_generated_total",
		Help: "Units produced by a provider, per stage.",
	}, []string{"stage"})
	fallback := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "generation_fallback_total",
		Help: "Units produced by a fallback, per stage.",
	}, []string{"stage"})
	reg.MustRegister(duration, generated, fallback)
	return &GenerationMetrics{
		duration:  duration,
		generated: generated,
		fallback:  fallback,
	}
}

// ObserveDuration records the duration for the named stage.
func (g *GenerationMetrics) ObserveDuration(stage string, duration time.Duration) {
	if g == nil || g.duration == nil {
		return
	}
	g.duration.WithLabelValues(normalizeLabel(stage)).Observe(duration.Seconds())
}

// IncGenerated increments the provider-produced counter for the named stage.
func (g *GenerationMetrics) IncGenerated(stage string) {
	if g == nil || g.generated == nil {
		return
	}
	g.generated.WithLabelValues(normalizeLabel(stage)).Inc()
}

// IncFallback increments the fallback counter for the named stage.
func (g *GenerationMetrics) IncFallback(stage string) {
	if g == nil || g.fallback == nil {
		return
	}
	g.fallback.WithLabelValues(normalizeLabel(stage)).Inc()
}

func normalizeLabel(stage string) string {
	if stage == "" {
		return "unknown"
	}
	return stage
}
