package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/testutil"
)

// The timer writes sessions and completions on background goroutines while
// the pending list is re-read. Readers must only ever see whole rows.
func TestConcurrentAccess_TimerWritesDuringReloads(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, database)

	missions := NewSQLiteMissionRepo(database)
	sessions := NewSQLiteFocusSessionRepo(database)

	const count = 20
	seeded := make([]*domain.Mission, count)
	for i := range count {
		seeded[i] = testutil.NewTestMission(user.ID, fmt.Sprintf("Mission-%d", i))
		require.NoError(t, missions.Create(ctx, seeded[i]))
	}

	var wg sync.WaitGroup
	done := true
	for _, m := range seeded {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := missions.Update(ctx, id, MissionPatch{IsCompleted: &done}); err != nil {
				t.Errorf("complete %s: %v", id, err)
			}
			mid := id
			s := testutil.NewTestFocusSession(user.ID, domain.ModeFocus, 25)
			s.MissionID = &mid
			if err := sessions.Create(ctx, s); err != nil {
				t.Errorf("log session for %s: %v", id, err)
			}
		}(m.ID)
	}

	for r := range 5 {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for range 10 {
				pending, err := missions.Select(ctx, PendingFilter(user.ID), OrderCreatedAsc)
				if err != nil {
					t.Errorf("reader %d: select pending: %v", reader, err)
					return
				}
				for _, m := range pending {
					if m.ID == "" || m.Title == "" || m.IsCompleted {
						t.Errorf("reader %d: inconsistent row %+v", reader, m)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	pending, err := missions.Select(ctx, PendingFilter(user.ID), OrderCreatedAsc)
	require.NoError(t, err)
	assert.Empty(t, pending)

	recent, err := sessions.ListRecent(ctx, user.ID, 1)
	require.NoError(t, err)
	assert.Len(t, recent, count)
}

// Sequential writes followed by many concurrent readers must give every
// reader the same complete picture.
func TestConcurrentAccess_SequentialWritesConcurrentReads(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, database)

	missions := NewSQLiteMissionRepo(database)
	sessions := NewSQLiteFocusSessionRepo(database)
	notes := NewSQLiteNoteRepo(database)

	const count = 10
	for i := range count {
		m := testutil.NewTestMission(user.ID, fmt.Sprintf("Task-%d", i))
		require.NoError(t, missions.Create(ctx, m))
		require.NoError(t, sessions.Create(ctx, testutil.NewTestFocusSession(user.ID, domain.ModeFocus, 30, testutil.WithMissionID(m.ID))))
		require.NoError(t, notes.Create(ctx, testutil.NewTestNote(user.ID, fmt.Sprintf("Note-%d", i))))
	}

	var wg sync.WaitGroup
	for r := range 20 {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()

			all, err := missions.Select(ctx, MissionFilter{UserID: user.ID}, OrderCreatedDesc)
			if err != nil {
				t.Errorf("reader %d: list missions: %v", reader, err)
				return
			}
			if len(all) != count {
				t.Errorf("reader %d: expected %d missions, got %d", reader, count, len(all))
			}

			summary, err := sessions.SummaryByMode(ctx, user.ID, 7)
			if err != nil {
				t.Errorf("reader %d: summarize sessions: %v", reader, err)
				return
			}
			if len(summary) != 1 || summary[0].TotalMinutes != count*30 {
				t.Errorf("reader %d: unexpected summary %+v", reader, summary)
			}

			list, err := notes.ListByUser(ctx, user.ID)
			if err != nil {
				t.Errorf("reader %d: list notes: %v", reader, err)
				return
			}
			if len(list) != count {
				t.Errorf("reader %d: expected %d notes, got %d", reader, count, len(list))
			}
		}(r)
	}
	wg.Wait()
}
