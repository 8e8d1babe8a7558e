package domain

import "time"

// Note is a free-form "second brain" entry.
type Note struct {
	ID          string
	UserID      string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate normalizes the title and rejects blank ones.
func (n *Note) Validate() error {
	t, err := NormalizeTitle(n.Title)
	if err != nil {
		return err
	}
	n.Title = t
	return nil
}
