package user_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maplelisted/maplelisted/internal/user"
)

func TestAcknowledgments_Set(t *testing.T) {
	acks := user.Acknowledgments{}

	first := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	ack := acks.Set("on", "2026-01", first)

	assert.True(t, ack.Acknowledged)
	assert.Equal(t, "2026-01", ack.Version)
	assert.Equal(t, first, ack.AcknowledgedAt)

	got, ok := acks.Get("ON")
	require.True(t, ok, "codes are stored upper-cased")
	assert.Equal(t, ack, got)

	// Re-acknowledging a newer version keeps the original acknowledgment date.
	later := first.Add(30 * 24 * time.Hour)
	ack = acks.Set("ON", "2026-02", later)

	assert.Equal(t, "2026-02", ack.Version)
	assert.Equal(t, first, ack.AcknowledgedAt)
	assert.Equal(t, later, ack.UpdatedAt)
}

func TestAcknowledgments_Get(t *testing.T) {
	acks := user.Acknowledgments{}

	_, ok := acks.Get("BC")
	assert.False(t, ok)

	acks.Set("BC", "2026-01", time.Now())

	_, ok = acks.Get("bc")
	assert.True(t, ok)
}

func TestUser_AcceptTerms(t *testing.T) {
	u := &user.User{}
	require.False(t, u.Terms.TOS)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u.AcceptTerms("2026-01", now)

	assert.True(t, u.Terms.TOS)
	assert.Equal(t, "2026-01", u.Terms.TOSVersion)
	require.NotNil(t, u.Terms.TOSAcceptedAt)
	assert.Equal(t, now, *u.Terms.TOSAcceptedAt)
}
