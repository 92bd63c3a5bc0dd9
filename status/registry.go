// Package status is the metrics registry shared between the presentation
// engine, which writes every tick, and the diagnostics line, which reads.
package status

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Registry groups gauges by value type
// Must not be copied after first use
type Registry struct {
	Bools   Family[atomic.Bool]
	Ints    Family[atomic.Int64]
	Floats  Family[Float]
	Strings Family[Text]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Len is the number of gauges across all families
func (r *Registry) Len() int {
	return r.Bools.Len() + r.Ints.Len() + r.Floats.Len() + r.Strings.Len()
}

// Format renders the given keys as space-separated key=value pairs in order
// Keys not registered in any family are skipped
func (r *Registry) Format(keys ...string) string {
	var b strings.Builder
	for _, k := range keys {
		v, ok := r.value(k)
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v)
	}
	return b.String()
}

func (r *Registry) value(key string) (string, bool) {
	if g, ok := r.Strings.lookup(key); ok {
		return g.Load(), true
	}
	if g, ok := r.Ints.lookup(key); ok {
		return strconv.FormatInt(g.Load(), 10), true
	}
	if g, ok := r.Floats.lookup(key); ok {
		return fmt.Sprintf("%.3f", g.Get()), true
	}
	if g, ok := r.Bools.lookup(key); ok {
		return strconv.FormatBool(g.Load()), true
	}
	return "", false
}
