package ui

import (
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Dicklesworthstone/cpumeter/internal/model"
)

// Record is one line of JSON output.
type Record struct {
	Time   time.Time    `json:"time"`
	Valid  bool         `json:"valid"`
	System float64      `json:"system"`
	User   float64      `json:"user"`
	Idle   float64      `json:"idle"`
	Nice   float64      `json:"nice"`
	Levels model.Levels `json:"levels"`
}

// NewRecord describes snap, with the given displayed levels.
func NewRecord(snap model.Snapshot, levels model.Levels) Record {
	return Record{
		Time:   snap.Timestamp,
		Valid:  snap.Valid,
		System: snap.System,
		User:   snap.User,
		Idle:   snap.Idle,
		Nice:   snap.Nice,
		Levels: levels,
	}
}

// WriteSnapshot writes snap as a single JSON document.
func WriteSnapshot(w io.Writer, snap model.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewRecord(snap, snap.Levels()))
}

// StreamRenderer writes every meter frame as a line of NDJSON.
type StreamRenderer struct {
	mu     sync.Mutex
	enc    *json.Encoder
	source func() (model.Snapshot, bool)
	now    func() time.Time
	logger *slog.Logger
}

// NewStreamRenderer writes frames to w. If logger is nil, a no-op logger is used.
func NewStreamRenderer(w io.Writer, logger *slog.Logger) *StreamRenderer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &StreamRenderer{enc: json.NewEncoder(w), now: time.Now, logger: logger}
}

// Attach sets where frame percentages come from.
func (r *StreamRenderer) Attach(source func() (model.Snapshot, bool)) {
	r.mu.Lock()
	r.source = source
	r.mu.Unlock()
}

func (r *StreamRenderer) Redraw(levels model.Levels) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var snap model.Snapshot
	if r.source != nil {
		snap, _ = r.source()
	}
	rec := NewRecord(snap, levels)
	rec.Time = r.now()
	if err := r.enc.Encode(rec); err != nil {
		r.logger.Warn("failed to write frame", "error", err)
	}
}
