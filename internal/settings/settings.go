// Package settings persists the user's timer durations and theme in a local
// preferences file and hands the current value to whoever needs it.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vocuz/vocuz/internal/domain"
)

// Preferences is the content of the preferences file.
type Preferences struct {
	Timer domain.TimerSettings `yaml:"timerSettings"`
	Theme domain.Theme         `yaml:"theme"`
}

// Defaults returns the preferences used before anything was saved.
func Defaults() Preferences {
	return Preferences{Timer: domain.DefaultTimerSettings(), Theme: domain.DefaultTheme}
}

// normalize fills missing fields and replaces an unknown theme.
func (p Preferences) normalize() Preferences {
	p.Timer = p.Timer.WithDefaults()
	if _, err := domain.ParseTheme(string(p.Theme)); err != nil {
		p.Theme = domain.DefaultTheme
	}
	return p
}

// Store loads and saves preferences.
type Store interface {
	Load() (Preferences, error)
	Save(p Preferences) error
}

// FileStore keeps preferences in a YAML file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns Defaults when the file does not exist. Invalid durations in a
// hand-edited file are replaced by defaults rather than failing start-up.
func (s *FileStore) Load() (Preferences, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Preferences{}, fmt.Errorf("reading preferences: %w", err)
	}
	var p Preferences
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("parsing preferences %s: %w", s.path, err)
	}
	p = p.normalize()
	if err := p.Timer.Validate(); err != nil {
		p.Timer = domain.DefaultTimerSettings()
	}
	return p, nil
}

func (s *FileStore) Save(p Preferences) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}

// Holder is the in-process owner of the current preferences. It is passed
// explicitly to the components that read settings; subscribers registered
// with OnChange hear about every change, in the order the changes were made.
type Holder struct {
	// write serializes Update, Modify and Reload, including the listener
	// calls they make. Listeners must not write back to the Holder.
	write sync.Mutex

	mu        sync.RWMutex
	store     Store
	current   Preferences
	listeners []func(Preferences)
}

// NewHolder loads the stored preferences.
func NewHolder(store Store) (*Holder, error) {
	p, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Holder{store: store, current: p}, nil
}

func (h *Holder) Get() Preferences {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Timer is shorthand for Get().Timer.
func (h *Holder) Timer() domain.TimerSettings {
	return h.Get().Timer
}

// Update validates, persists and publishes p. Nothing changes when
// validation or the write fails.
func (h *Holder) Update(p Preferences) error {
	h.write.Lock()
	defer h.write.Unlock()
	return h.commit(p)
}

// Modify applies fn to the current preferences and commits the result as
// one step, so concurrent edits never overwrite each other.
func (h *Holder) Modify(fn func(p *Preferences)) error {
	h.write.Lock()
	defer h.write.Unlock()
	p := h.Get()
	fn(&p)
	return h.commit(p)
}

// UpdateTimer replaces the timer durations and keeps the theme.
func (h *Holder) UpdateTimer(t domain.TimerSettings) error {
	return h.Modify(func(p *Preferences) { p.Timer = t })
}

// UpdateTheme replaces the theme and keeps the timer durations.
func (h *Holder) UpdateTheme(t domain.Theme) error {
	return h.Modify(func(p *Preferences) { p.Theme = t })
}

// Reload re-reads the store and publishes its content when another process
// changed it. It reports whether anything changed.
func (h *Holder) Reload() (bool, error) {
	h.write.Lock()
	defer h.write.Unlock()
	p, err := h.store.Load()
	if err != nil {
		return false, err
	}
	if p == h.Get() {
		return false, nil
	}
	h.publish(p)
	return true, nil
}

func (h *Holder) commit(p Preferences) error {
	if err := p.Timer.Validate(); err != nil {
		return err
	}
	if _, err := domain.ParseTheme(string(p.Theme)); err != nil {
		return err
	}
	if err := h.store.Save(p); err != nil {
		return err
	}
	h.publish(p)
	return nil
}

func (h *Holder) publish(p Preferences) {
	h.mu.Lock()
	h.current = p
	listeners := append([]func(Preferences){}, h.listeners...)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(p)
	}
}

// OnChange registers fn to run after every successful Update, Modify or
// Reload that changed something. The returned func unregisters it.
func (h *Holder) OnChange(fn func(Preferences)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
	idx := len(h.listeners) - 1
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if idx < len(h.listeners) {
			h.listeners[idx] = func(Preferences) {}
		}
	}
}
