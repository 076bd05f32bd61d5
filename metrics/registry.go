package metrics

import "sync"

// Registry names metrics so they can be exported together. Lookups create
// the metric on first use.
type Registry struct {
	mu         sync.Mutex
	counters   map[string]*Counter
	vecs       map[string]*CounterVec
	histograms map[string]*Histogram
}

// DefaultRegistry holds the verifier metrics declared in standard.go.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		counters:   make(map[string]*Counter),
		vecs:       make(map[string]*CounterVec),
		histograms: make(map[string]*Histogram),
	}
}

func getOrCreate[T any](r *Registry, m map[string]T, name string, create func() T) T {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := m[name]; ok {
		return v
	}
	v := create()
	m[name] = v
	return v
}

// Counter returns the counter registered under name.
func (r *Registry) Counter(name string) *Counter {
	return getOrCreate(r, r.counters, name, func() *Counter { return new(Counter) })
}

// CounterVec returns the counter family registered under name. label only
// applies when the family is created.
func (r *Registry) CounterVec(name, label string) *CounterVec {
	return getOrCreate(r, r.vecs, name, func() *CounterVec { return NewCounterVec(label) })
}

// Histogram returns the histogram registered under name. bounds only apply
// when the histogram is created.
func (r *Registry) Histogram(name string, bounds []float64) *Histogram {
	return getOrCreate(r, r.histograms, name, func() *Histogram { return NewHistogram(bounds) })
}

// Snapshot returns every metric keyed by name: int64 for counters,
// map[string]int64 keyed by label value for counter families and
// HistogramSnapshot for histograms.
func (r *Registry) Snapshot() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := make(map[string]any, len(r.counters)+len(r.vecs)+len(r.histograms))
	for name, c := range r.counters {
		snap[name] = c.Value()
	}
	for name, v := range r.vecs {
		snap[name] = v.Values()
	}
	for name, h := range r.histograms {
		snap[name] = h.Snapshot()
	}
	return snap
}
