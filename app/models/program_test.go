package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionValidate(t *testing.T) {
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	s := &Session{
		Title:    "Apertura",
		StartsAt: start,
		EndsAt:   start.Add(time.Hour),
	}
	assert.NoError(t, s.Validate())
}

func TestSessionValidateRejectsInvertedTimes(t *testing.T) {
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	s := &Session{
		Title:    "Apertura",
		StartsAt: start,
		EndsAt:   start.Add(-time.Minute),
	}
	assert.ErrorIs(t, s.Validate(), ErrSessionEndsBeforeStart)

	s.EndsAt = start
	assert.ErrorIs(t, s.Validate(), ErrSessionEndsBeforeStart)
}

func TestSessionSpeakerRoundTrip(t *testing.T) {
	s := &Session{}
	require.NoError(t, s.SetSpeaker(Speaker{Name: "Ana Pérez", Title: "Directora"}))

	sp, err := s.DecodeSpeaker()
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", sp.Name)
	assert.Equal(t, "Directora", sp.Title)
}
