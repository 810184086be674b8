// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medgate/internal/engine"
	"medgate/internal/principles"
)

func newTestSession() *Session {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	return New(engine.New(engine.WithClock(func() time.Time { return at })))
}

func TestValidateAcceptsCleanTruths(t *testing.T) {
	sess := newTestSession()

	result, err := sess.Validate("Patient reports mild headache, no other symptoms",
		nil, principles.LevelBasic)
	require.NoError(t, err)
	assert.True(t, result.IsValid)

	truths := sess.Truths()
	require.Len(t, truths, 1)
	assert.Equal(t, "Patient reports mild headache, no other symptoms", truths[0])

	stats := sess.Stats()
	assert.Equal(t, 1, stats.Validations)
	assert.Equal(t, 0, stats.Rejected)
}

func TestValidateRejectedNotAccepted(t *testing.T) {
	sess := newTestSession()

	result, err := sess.Validate("pain is both acute and chronic", nil, principles.LevelBasic)
	require.NoError(t, err)
	assert.False(t, result.IsValid)

	assert.Empty(t, sess.Truths())
	stats := sess.Stats()
	assert.Equal(t, 1, stats.Rejected)
	assert.Equal(t, 1, stats.Contradictions)
}

func TestValidateAgainstAcceptedTruths(t *testing.T) {
	sess := newTestSession()

	first, err := sess.Validate("the condition is chronic", nil, principles.LevelBasic)
	require.NoError(t, err)
	require.True(t, first.IsValid)

	// Conflicts with the accepted truth, so it is gated and not accepted.
	second, err := sess.Validate("onset was acute", nil, principles.LevelBasic)
	require.NoError(t, err)
	assert.False(t, second.IsValid)
	require.Len(t, second.Contradictions, 1)
	assert.Len(t, sess.Truths(), 1)
}

func TestEmergencyCounter(t *testing.T) {
	sess := newTestSession()

	result, err := sess.Validate("patient had a seizure", nil, principles.LevelBasic)
	require.NoError(t, err)
	assert.True(t, result.Emergency)

	stats := sess.Stats()
	assert.Equal(t, 1, stats.Emergencies)
	assert.Equal(t, 1, stats.Rejected)
}

func TestSaveAndLoadTruths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truths.yaml")

	sess := newTestSession()
	_, err := sess.Validate("the condition is chronic", nil, principles.LevelBasic)
	require.NoError(t, err)
	require.NoError(t, sess.Save(path))

	restored := newTestSession()
	require.NoError(t, restored.Load(path))
	assert.Equal(t, sess.Truths(), restored.Truths())
}

func TestLoadMissingFile(t *testing.T) {
	sess := newTestSession()
	require.NoError(t, sess.Load(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Empty(t, sess.Truths())
}

func TestSessionIDsUnique(t *testing.T) {
	a := newTestSession()
	b := newTestSession()
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
