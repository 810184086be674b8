// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package audit appends one JSON line per engine event to a decision log.
// Recording is best-effort; a failed write never fails a validation.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"medgate/internal/engine"
)

// Record is one decision-log entry.
type Record struct {
	ID        string   `json:"id"`
	Timestamp string   `json:"timestamp"`
	Event     string   `json:"event"`
	Text      string   `json:"text,omitempty"`
	Detail    string   `json:"detail,omitempty"`
	Valid     *bool    `json:"valid,omitempty"`
	Emergency *bool    `json:"emergency,omitempty"`
	Score     *float64 `json:"score,omitempty"`
}

// Recorder writes decision records to a log file in the audit directory.
type Recorder struct {
	mu   sync.Mutex
	file *os.File

	// OnError receives write failures when set. Left nil, failures are
	// silently dropped.
	OnError func(err error)
}

// NewRecorder opens (or creates) the decision log under dir.
func NewRecorder(dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating audit directory: %w", err)
	}
	path := filepath.Join(dir, "decisions.jsonl")
	file, err := os.OpenFile(filepath.Clean(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	return &Recorder{file: file}, nil
}

// Hook returns the engine event hook backed by this recorder.
func (r *Recorder) Hook() engine.EventFunc {
	return func(event engine.Event) {
		r.record(event)
	}
}

func (r *Recorder) record(event engine.Event) {
	rec := Record{
		ID:        uuid.NewString(),
		Timestamp: event.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Event:     string(event.Type),
		Text:      event.Text,
		Detail:    event.Detail,
	}
	if event.Result != nil {
		valid := event.Result.IsValid
		emergency := event.Result.Emergency
		score := event.Result.OverallScore
		rec.Valid = &valid
		rec.Emergency = &emergency
		rec.Score = &score
	}

	line, err := json.Marshal(rec)
	if err != nil {
		r.fail(err)
		return
	}
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return
	}
	if _, err := r.file.Write(line); err != nil {
		r.fail(err)
	}
}

func (r *Recorder) fail(err error) {
	if r.OnError != nil {
		r.OnError(err)
	}
}

// Close flushes and closes the log file. Further events are dropped.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
