package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Registry stores counters and gauges for exposition and mirrors them
// to OTel instruments.
type Registry struct {
	mu       sync.RWMutex
	counters map[string]*atomic.Int64 // key = fullKey(name, labels)
	gauges   map[string]*atomic.Int64
	meter    metric.Meter
	otelCtrs map[string]metric.Int64Counter // base name -> instrument
	otelGaug map[string]metric.Int64Gauge
}

func NewRegistry() *Registry {
	m := otel.GetMeterProvider().Meter("palette_api")
	return &Registry{
		counters: make(map[string]*atomic.Int64),
		gauges:   make(map[string]*atomic.Int64),
		meter:    m,
		otelCtrs: make(map[string]metric.Int64Counter),
		otelGaug: make(map[string]metric.Int64Gauge),
	}
}

// fullKey makes deterministic key from name and labels map.
func fullKey(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return name
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(labels[k])
	}
	b.WriteByte('}')
	return b.String()
}

func attrs(labels map[string]string) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(labels))
	for k, v := range labels {
		out = append(out, attribute.String(k, v))
	}
	return out
}

// Inc increases a named counter by n with labels.
// Also records the increment via OpenTelemetry counter instrument.
func (r *Registry) Inc(ctx context.Context, name string, labels map[string]string, n int64) {
	key := fullKey(name, labels)

	// local registry
	r.mu.RLock()
	c := r.counters[key]
	r.mu.RUnlock()
	if c == nil {
		r.mu.Lock()
		if c = r.counters[key]; c == nil {
			var v atomic.Int64
			r.counters[key] = &v
			c = &v
		}
		r.mu.Unlock()
	}
	c.Add(n)

	// OTel mirror
	r.mu.RLock()
	inst := r.otelCtrs[name]
	r.mu.RUnlock()
	if inst == nil {
		r.mu.Lock()
		if inst = r.otelCtrs[name]; inst == nil {
			ctr, _ := r.meter.Int64Counter(name)
			r.otelCtrs[name] = ctr
			inst = ctr
		}
		r.mu.Unlock()
	}
	if inst != nil {
		inst.Add(ctx, n, metric.WithAttributes(attrs(labels)...))
	}
}

// Set records the current value of a named gauge with labels, locally
// and through the OTel gauge instrument.
func (r *Registry) Set(ctx context.Context, name string, labels map[string]string, v int64) {
	key := fullKey(name, labels)

	r.mu.RLock()
	g := r.gauges[key]
	r.mu.RUnlock()
	if g == nil {
		r.mu.Lock()
		if g = r.gauges[key]; g == nil {
			var val atomic.Int64
			r.gauges[key] = &val
			g = &val
		}
		r.mu.Unlock()
	}
	g.Store(v)

	r.mu.RLock()
	inst := r.otelGaug[name]
	r.mu.RUnlock()
	if inst == nil {
		r.mu.Lock()
		if inst = r.otelGaug[name]; inst == nil {
			gauge, _ := r.meter.Int64Gauge(name)
			r.otelGaug[name] = gauge
			inst = gauge
		}
		r.mu.Unlock()
	}
	if inst != nil {
		inst.Record(ctx, v, metric.WithAttributes(attrs(labels)...))
	}
}

// SnapshotLines returns sorted text lines representing current values.
func (r *Registry) SnapshotLines() []string {
	payload := r.SnapshotJSON()
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s %d", k, payload[k]))
	}
	return lines
}

// SnapshotJSON returns a map of metric->value for JSON rendering.
func (r *Registry) SnapshotJSON() map[string]int64 {
	out := make(map[string]int64)
	r.mu.RLock()
	for k, v := range r.counters {
		out[k] = v.Load()
	}
	for k, v := range r.gauges {
		out[k] = v.Load()
	}
	r.mu.RUnlock()
	return out
}

// EchoHandlerText writes metrics in simple text format.
func (r *Registry) EchoHandlerText(c echo.Context) error {
	lines := r.SnapshotLines()
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
	for i := range lines {
		if _, err := c.Response().Write([]byte(lines[i] + "\n")); err != nil {
			return err
		}
	}
	return nil
}

// EchoHandlerJSON writes metrics as JSON.
func (r *Registry) EchoHandlerJSON(c echo.Context) error {
	payload := r.SnapshotJSON()
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	enc := json.NewEncoder(c.Response())
	return enc.Encode(payload)
}
