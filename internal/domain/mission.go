package domain

import (
	"strings"
	"time"
)

type Mission struct {
	ID          string
	UserID      string
	Title       string
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizeTitle trims surrounding whitespace and rejects blank titles.
func NormalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ErrEmptyTitle
	}
	return t, nil
}

// Rename validates and applies a new title.
func (m *Mission) Rename(title string, now time.Time) error {
	t, err := NormalizeTitle(title)
	if err != nil {
		return err
	}
	m.Title = t
	m.UpdatedAt = now
	return nil
}

// SetCompleted records the completion flag. It is a no-op on UpdatedAt when
// the flag does not change.
func (m *Mission) SetCompleted(done bool, now time.Time) {
	if m.IsCompleted == done {
		return
	}
	m.IsCompleted = done
	m.UpdatedAt = now
}

// PendingOnly filters a mission slice down to the ones not yet completed,
// preserving order.
func PendingOnly(missions []*Mission) []*Mission {
	out := make([]*Mission, 0, len(missions))
	for _, m := range missions {
		if !m.IsCompleted {
			out = append(out, m)
		}
	}
	return out
}
