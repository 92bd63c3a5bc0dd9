package engine

import (
	"io"
	"log/slog"
	"testing"
)

type orderDisposer struct {
	name string
	log  *[]string
}

func (d orderDisposer) Dispose() { *d.log = append(*d.log, d.name) }

func TestLifecycleDisposesCoordinatorsFirst(t *testing.T) {
	var order []string
	l := NewLifecycle(slog.New(slog.NewTextHandler(io.Discard, nil)))
	l.AddLayer(orderDisposer{"layer-a", &order})
	l.AddCoordinator(orderDisposer{"coord", &order})
	l.AddLayer(orderDisposer{"layer-b", &order})

	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3", l.Len())
	}

	checked := false
	l.DisposeAll(func() int { checked = true; return 0 })
	l.DisposeAll(nil)

	want := []string{"coord", "layer-a", "layer-b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if !checked {
		t.Error("pending check not called")
	}
	if l.Len() != 0 {
		t.Errorf("Len after dispose = %d", l.Len())
	}
}
