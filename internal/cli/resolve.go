package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vocuz/vocuz/internal/repository"
)

// resolveRef picks one of n listed items by reference, where ref is either
// a 1-based position in the listing or an id / unique id prefix.
func resolveRef(kind, ref string, n int, idAt func(i int) string) (string, error) {
	if pos, err := strconv.Atoi(ref); err == nil {
		if pos < 1 || pos > n {
			return "", fmt.Errorf("%s #%d: %w", kind, pos, repository.ErrNotFound)
		}
		return idAt(pos - 1), nil
	}

	var match string
	for i := 0; i < n; i++ {
		id := idAt(i)
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			if match != "" {
				return "", fmt.Errorf("%s %q is ambiguous, use more characters", kind, ref)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%s %q: %w", kind, ref, repository.ErrNotFound)
	}
	return match, nil
}

// resolveMissionID resolves a reference against the full mission listing,
// in the order `vocuz mission list --all` shows it.
func resolveMissionID(ctx context.Context, app *App, ref string) (string, error) {
	missions, err := app.Missions.List(ctx)
	if err != nil {
		return "", err
	}
	return resolveRef("mission", ref, len(missions), func(i int) string { return missions[i].ID })
}

// resolvePendingMissionID resolves a reference among open missions, in the
// order the timer lists them.
func resolvePendingMissionID(ctx context.Context, app *App, ref string) (string, error) {
	missions, err := app.Missions.ListPending(ctx)
	if err != nil {
		return "", err
	}
	return resolveRef("mission", ref, len(missions), func(i int) string { return missions[i].ID })
}

func resolveNoteID(ctx context.Context, app *App, ref string) (string, error) {
	notes, err := app.Notes.List(ctx)
	if err != nil {
		return "", err
	}
	return resolveRef("note", ref, len(notes), func(i int) string { return notes[i].ID })
}
