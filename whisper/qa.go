package whisper

import (
	"log/slog"
	"math"
	"time"
)

// QAEntry is the recorded life of one whisper
type QAEntry struct {
	ID        string
	Kind      Kind
	Slot      string
	Rect      Rect
	Overlaps  bool
	SpawnedAt time.Duration
	RemovedAt time.Duration // zero while alive
}

// QASummary aggregates placement quality over a run
type QASummary struct {
	Spawned  int
	Removed  int
	Overlaps int
	Extent   Rect // union of all spawned boxes
	Entries  []QAEntry
}

// QA records spawn placement against the safe zone
// Not safe for concurrent use
type QA struct {
	logger  *slog.Logger
	entries []QAEntry
	index   map[string]int
}

// NewQA returns an empty recorder; nil logger discards summaries
func NewQA(logger *slog.Logger) *QA {
	return &QA{logger: logger, index: make(map[string]int)}
}

// RecordSpawn notes a new whisper and whether it touches the zone
func (q *QA) RecordSpawn(w *Whisper, zone SafeZone, at time.Duration) {
	r := w.Rect()
	q.index[w.ID] = len(q.entries)
	q.entries = append(q.entries, QAEntry{
		ID:        w.ID,
		Kind:      w.Kind,
		Slot:      w.Slot,
		Rect:      r,
		Overlaps:  zone.Intersects(r),
		SpawnedAt: at,
	})
}

// RecordRemoval notes retirement of a whisper
func (q *QA) RecordRemoval(w *Whisper, at time.Duration) {
	if i, ok := q.index[w.ID]; ok {
		q.entries[i].RemovedAt = at
	}
}

// Summary returns aggregated results so far
func (q *QA) Summary() QASummary {
	s := QASummary{
		Entries: append([]QAEntry(nil), q.entries...),
		Extent: Rect{
			Left: math.Inf(1), Top: math.Inf(1),
			Right: math.Inf(-1), Bottom: math.Inf(-1),
		},
	}
	for _, e := range q.entries {
		s.Spawned++
		if e.RemovedAt > 0 {
			s.Removed++
		}
		if e.Overlaps {
			s.Overlaps++
		}
		s.Extent.Left = math.Min(s.Extent.Left, e.Rect.Left)
		s.Extent.Top = math.Min(s.Extent.Top, e.Rect.Top)
		s.Extent.Right = math.Max(s.Extent.Right, e.Rect.Right)
		s.Extent.Bottom = math.Max(s.Extent.Bottom, e.Rect.Bottom)
	}
	if s.Spawned == 0 {
		s.Extent = Rect{}
	}
	return s
}

// LogSummary writes the summary at info level, overlaps at warn
func (q *QA) LogSummary() {
	if q.logger == nil {
		return
	}
	s := q.Summary()
	q.logger.Info("whisper qa summary",
		"spawned", s.Spawned,
		"removed", s.Removed,
		"overlaps", s.Overlaps,
		"extent_left", s.Extent.Left,
		"extent_top", s.Extent.Top,
		"extent_right", s.Extent.Right,
		"extent_bottom", s.Extent.Bottom,
	)
	for _, e := range s.Entries {
		if e.Overlaps {
			q.logger.Warn("whisper overlapped safe zone", "id", e.ID, "kind", e.Kind.String(), "slot", e.Slot)
		}
	}
}
