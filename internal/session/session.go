// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package session owns the only mutable state in the system: the rolling
// set of accepted truths that truth-conflict detection compares against,
// and per-session counters. Everything is guarded by a single mutex; the
// engine itself stays stateless.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"medgate/internal/engine"
	"medgate/internal/principles"
)

// Stats are the session counters.
type Stats struct {
	Validations    int `json:"validations" yaml:"validations"`
	Emergencies    int `json:"emergencies" yaml:"emergencies"`
	Contradictions int `json:"contradictions" yaml:"contradictions"`
	Rejected       int `json:"rejected" yaml:"rejected"`
}

// truthFile is the on-disk shape of a persisted truth store.
type truthFile struct {
	Version string  `yaml:"version"`
	Truths  []Truth `yaml:"truths"`
}

// Truth is one accepted statement.
type Truth struct {
	Statement  string    `yaml:"statement"`
	AcceptedAt time.Time `yaml:"accepted_at"`
}

// Session wraps an engine with truth state and counters for one
// conversation.
type Session struct {
	ID     string
	engine *engine.Engine

	mu     sync.Mutex
	truths []Truth
	stats  Stats
}

// New creates a session over the given engine.
func New(eng *engine.Engine) *Session {
	return &Session{ID: uuid.NewString(), engine: eng}
}

// Validate runs one statement through the engine against the session's
// accepted truths and updates the counters. Statements that validate clean
// are accepted as truths for subsequent calls.
func (s *Session) Validate(text string, context map[string]string, level principles.Level) (*engine.Result, error) {
	s.mu.Lock()
	known := make([]string, 0, len(s.truths))
	for _, t := range s.truths {
		known = append(known, t.Statement)
	}
	s.mu.Unlock()

	result, err := s.engine.Validate(text, context, level, known)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Validations++
	if result.Emergency {
		s.stats.Emergencies++
	}
	s.stats.Contradictions += len(result.Contradictions)
	if result.IsValid {
		s.truths = append(s.truths, Truth{Statement: text, AcceptedAt: result.Timestamp})
	} else {
		s.stats.Rejected++
	}
	return result, nil
}

// Stats returns a snapshot of the counters.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Truths returns a snapshot of the accepted statements.
func (s *Session) Truths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.truths))
	for _, t := range s.truths {
		out = append(out, t.Statement)
	}
	return out
}

// Load replaces the truth store from a YAML file. A missing file is not an
// error; the session simply starts empty.
func (s *Session) Load(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading truth store: %w", err)
	}
	var file truthFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing truth store %s: %w", path, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.truths = file.Truths
	return nil
}

// Save writes the truth store to a YAML file.
func (s *Session) Save(path string) error {
	if path == "" {
		return nil
	}
	s.mu.Lock()
	file := truthFile{Version: "1.0", Truths: append([]Truth(nil), s.truths...)}
	s.mu.Unlock()

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("encoding truth store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating truth store directory: %w", err)
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o600); err != nil {
		return fmt.Errorf("writing truth store: %w", err)
	}
	return nil
}
