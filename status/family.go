package status

import (
	"math"
	"sync"
	"sync/atomic"
)

// Family holds the gauges of one value type keyed by name
// Get allocates on first use; writers cache the pointer and store lock-free
type Family[T any] struct {
	items sync.Map // string -> *T
	n     atomic.Int32
}

// Get returns the gauge for key, creating it if absent
func (f *Family[T]) Get(key string) *T {
	if v, ok := f.items.Load(key); ok {
		return v.(*T)
	}
	v, loaded := f.items.LoadOrStore(key, new(T))
	if !loaded {
		f.n.Add(1)
	}
	return v.(*T)
}

// Len is the number of registered gauges
func (f *Family[T]) Len() int {
	return int(f.n.Load())
}

func (f *Family[T]) lookup(key string) (*T, bool) {
	v, ok := f.items.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// Float is a float64 gauge
type Float struct {
	bits atomic.Uint64
}

func (g *Float) Set(v float64) { g.bits.Store(math.Float64bits(v)) }
func (g *Float) Get() float64  { return math.Float64frombits(g.bits.Load()) }

// Text is a string gauge; the zero value reads as ""
type Text struct {
	p atomic.Pointer[string]
}

func (g *Text) Store(v string) { g.p.Store(&v) }

func (g *Text) Load() string {
	if p := g.p.Load(); p != nil {
		return *p
	}
	return ""
}
