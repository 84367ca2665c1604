package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewCartMetricsWithRegisterer(t *testing.T) {
	metrics := NewCartMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("NewCartMetricsWithRegisterer should not return nil")
	}
	if metrics.itemsAdded == nil {
		t.Error("itemsAdded counter should not be nil")
	}
	if metrics.linesRemoved == nil {
		t.Error("linesRemoved counter should not be nil")
	}
	if metrics.cartLines == nil {
		t.Error("cartLines gauge should not be nil")
	}
	if metrics.submissions == nil {
		t.Error("submissions counter vec should not be nil")
	}
	if metrics.submitDuration == nil {
		t.Error("submitDuration histogram should not be nil")
	}
	if metrics.submitsInFlight == nil {
		t.Error("submitsInFlight gauge should not be nil")
	}
}

func TestNewCartMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewCartMetricsWithRegisterer(reg)
	second := NewCartMetricsWithRegisterer(reg)

	first.RecordItemAdded()
	second.RecordItemAdded()

	if got := counterValue(t, first.itemsAdded); got != 2 {
		t.Errorf("expected shared counter value 2, got %f", got)
	}
}

func TestRecordCartActivity(t *testing.T) {
	metrics := NewCartMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordItemAdded()
	metrics.RecordItemAdded()
	metrics.RecordLineRemoved()
	metrics.SetCartLines(3)

	if got := counterValue(t, metrics.itemsAdded); got != 2 {
		t.Errorf("expected items added 2, got %f", got)
	}
	if got := counterValue(t, metrics.linesRemoved); got != 1 {
		t.Errorf("expected lines removed 1, got %f", got)
	}

	gauge := &dto.Metric{}
	if err := metrics.cartLines.Write(gauge); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if gauge.Gauge.GetValue() != 3 {
		t.Errorf("expected cart lines 3, got %f", gauge.Gauge.GetValue())
	}
}

func TestRecordSubmitLifecycle(t *testing.T) {
	metrics := NewCartMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordSubmitStarted()

	inFlight := &dto.Metric{}
	if err := metrics.submitsInFlight.Write(inFlight); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if inFlight.Gauge.GetValue() != 1 {
		t.Errorf("expected 1 submission in flight, got %f", inFlight.Gauge.GetValue())
	}

	metrics.RecordSubmitFinished("success", 150*time.Millisecond)
	metrics.RecordSubmitRejected("validation_error")

	inFlight = &dto.Metric{}
	if err := metrics.submitsInFlight.Write(inFlight); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if inFlight.Gauge.GetValue() != 0 {
		t.Errorf("expected 0 submissions in flight, got %f", inFlight.Gauge.GetValue())
	}

	if got := counterValue(t, metrics.submissions.WithLabelValues("success")); got != 1 {
		t.Errorf("expected 1 successful submission, got %f", got)
	}
	if got := counterValue(t, metrics.submissions.WithLabelValues("validation_error")); got != 1 {
		t.Errorf("expected 1 rejected submission, got %f", got)
	}

	histogram := &dto.Metric{}
	if err := metrics.submitDuration.Write(histogram); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}
	if histogram.Histogram.GetSampleCount() != 1 {
		t.Errorf("expected 1 duration sample, got %d", histogram.Histogram.GetSampleCount())
	}
}

func TestNilCartMetricsIsNoop(t *testing.T) {
	var metrics *CartMetrics

	metrics.RecordItemAdded()
	metrics.RecordLineRemoved()
	metrics.SetCartLines(1)
	metrics.RecordSubmitStarted()
	metrics.RecordSubmitFinished("success", time.Second)
	metrics.RecordSubmitRejected("duplicate")
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := c.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}
