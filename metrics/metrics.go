// Package metrics records verifier outcomes: how many proofs were accepted,
// why the others were rejected, how many validators signed and how long
// checks took. Counters are lock-free; histograms count into fixed buckets.
package metrics

import (
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Counter is a monotonically increasing count.
type Counter struct {
	value atomic.Int64
}

// Inc increments the counter by 1.
func (c *Counter) Inc() { c.value.Add(1) }

// Value returns the current count.
func (c *Counter) Value() int64 { return c.value.Load() }

// CounterVec is a family of counters keyed by one label, such as the reason
// a proof was rejected.
type CounterVec struct {
	label    string
	counters sync.Map // label value -> *Counter
}

// NewCounterVec returns an empty family keyed by label.
func NewCounterVec(label string) *CounterVec {
	return &CounterVec{label: label}
}

// Label returns the name of the label the family is keyed by.
func (v *CounterVec) Label() string { return v.label }

// With returns the counter for value, creating it on first use.
func (v *CounterVec) With(value string) *Counter {
	if c, ok := v.counters.Load(value); ok {
		return c.(*Counter)
	}
	c, _ := v.counters.LoadOrStore(value, new(Counter))
	return c.(*Counter)
}

// Values returns the count of every label value seen so far.
func (v *CounterVec) Values() map[string]int64 {
	out := make(map[string]int64)
	v.counters.Range(func(k, c any) bool {
		out[k.(string)] = c.(*Counter).Value()
		return true
	})
	return out
}

// Total returns the sum over all label values.
func (v *CounterVec) Total() int64 {
	var total int64
	for _, n := range v.Values() {
		total += n
	}
	return total
}

// Histogram counts observations into buckets with fixed upper bounds. An
// observation lands in the first bucket whose bound is not below it;
// larger values only count toward the total.
type Histogram struct {
	bounds []float64 // ascending

	mu     sync.Mutex
	counts []int64 // per bucket, not cumulative
	count  int64
	sum    float64
}

// NewHistogram returns a histogram with the given bucket upper bounds.
func NewHistogram(bounds []float64) *Histogram {
	b := append([]float64(nil), bounds...)
	sort.Float64s(b)
	return &Histogram{bounds: b, counts: make([]int64, len(b))}
}

// Observe records v.
func (h *Histogram) Observe(v float64) {
	i := sort.SearchFloat64s(h.bounds, v)
	h.mu.Lock()
	defer h.mu.Unlock()
	if i < len(h.counts) {
		h.counts[i]++
	}
	h.count++
	h.sum += v
}

// HistogramSnapshot is a point-in-time view of a Histogram. Buckets maps
// each upper bound, formatted as "le_<bound>", to the cumulative number of
// observations at or below it.
type HistogramSnapshot struct {
	Count   int64            `json:"count"`
	Sum     float64          `json:"sum"`
	Buckets map[string]int64 `json:"buckets"`
}

// Snapshot returns the current state of h.
func (h *Histogram) Snapshot() HistogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := HistogramSnapshot{
		Count:   h.count,
		Sum:     h.sum,
		Buckets: make(map[string]int64, len(h.bounds)),
	}
	var cum int64
	for i, b := range h.bounds {
		cum += h.counts[i]
		s.Buckets["le_"+strconv.FormatFloat(b, 'g', -1, 64)] = cum
	}
	return s
}

// Timer records the time since it was started into a histogram, in
// milliseconds.
type Timer struct {
	start time.Time
	hist  *Histogram
}

// NewTimer starts a timer that records into h.
func NewTimer(h *Histogram) *Timer {
	return &Timer{start: time.Now(), hist: h}
}

// Stop records the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	d := time.Since(t.start)
	if t.hist != nil {
		t.hist.Observe(float64(d.Microseconds()) / 1000)
	}
	return d
}
