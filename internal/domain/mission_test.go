package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestNormalizeTitle(t *testing.T) {
	got, err := NormalizeTitle("  write report  ")
	require.NoError(t, err)
	assert.Equal(t, "write report", got)

	_, err = NormalizeTitle(" \t ")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestMission_Rename(t *testing.T) {
	m := &Mission{Title: "old"}
	require.NoError(t, m.Rename("new", testNow))
	assert.Equal(t, "new", m.Title)
	assert.Equal(t, testNow, m.UpdatedAt)
}

func TestMission_RenameBlankKeepsTitle(t *testing.T) {
	m := &Mission{Title: "old"}
	err := m.Rename("   ", testNow)
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Equal(t, "old", m.Title)
	assert.True(t, m.UpdatedAt.IsZero())
}

func TestMission_SetCompletedUnchangedLeavesTimestamp(t *testing.T) {
	m := &Mission{IsCompleted: true}
	m.SetCompleted(true, testNow)
	assert.True(t, m.UpdatedAt.IsZero())

	m.SetCompleted(false, testNow)
	assert.False(t, m.IsCompleted)
	assert.Equal(t, testNow, m.UpdatedAt)
}

func TestPendingOnly_PreservesOrder(t *testing.T) {
	list := []*Mission{
		{ID: "a"},
		{ID: "b", IsCompleted: true},
		{ID: "c"},
	}
	pending := PendingOnly(list)
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].ID)
	assert.Equal(t, "c", pending[1].ID)
}

func TestNote_Validate(t *testing.T) {
	n := &Note{Title: "  idea "}
	require.NoError(t, n.Validate())
	assert.Equal(t, "idea", n.Title)

	blank := &Note{Title: ""}
	assert.ErrorIs(t, blank.Validate(), ErrEmptyTitle)
}
