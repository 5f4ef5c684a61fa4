package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestGenerationMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewGenerationMetrics(reg)
	stage := "image"
	metrics.ObserveDuration(stage, 250*time.Millisecond)
	metrics.IncGenerated(stage)
	metrics.IncFallback(stage)
	metrics.IncFallback(stage)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "generation_generated_total", "stage", stage); err != nil {
		t.Fatalf("fetch generated: %v", err)
	} else if got != 1 {
		t.Fatalf("expected generated=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "generation_fallback_total", "stage", stage); err != nil {
		t.Fatalf("fetch fallback: %v", err)
	} else if got != 2 {
		t.Fatalf("expected fallback=2, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "generation_stage_duration_seconds", "stage", stage); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestGenerationMetricsNilRegistererIsNoop(t *testing.T) {
	metrics := NewGenerationMetrics(nil)
	metrics.ObserveDuration("caption", time.Second)
	metrics.IncGenerated("caption")
	metrics.IncFallback("caption")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
