package invoice

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/invigen/invigen/internal/platform/cache"
	"github.com/invigen/invigen/internal/platform/httpx"
	"github.com/invigen/invigen/internal/theme"
)

// Session is one editing session: a single mutator (the user) and any
// number of render reads. Renders always see a fully-applied snapshot,
// never a torn mixture of two edits.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu    sync.Mutex
	data  Data
	theme *theme.Theme
}

// Snapshot returns a deep copy of the data and the saved theme, if
// any. The copy is safe to render while the session keeps mutating.
func (s *Session) Snapshot() (Data, *theme.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone(), s.theme
}

// Update applies fn to a working copy and commits it only when fn
// succeeds, so a failed mutation leaves the session unchanged.
func (s *Session) Update(fn func(*Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	working := s.data.Clone()
	if err := fn(&working); err != nil {
		return err
	}
	s.data = working
	return nil
}

// AddItem appends a blank line item at quantity one.
func (s *Session) AddItem() {
	_ = s.Update(func(d *Data) error {
		d.Items = append(d.Items, blankItem())
		return nil
	})
}

// RemoveItem deletes the item at index. Removing the last remaining
// item is refused: an invoice always has at least one line.
func (s *Session) RemoveItem(index int) error {
	return s.Update(func(d *Data) error {
		if index < 0 || index >= len(d.Items) {
			return fmt.Errorf("%w: item index %d out of range", httpx.ErrValidation, index)
		}
		if len(d.Items) == 1 {
			return httpx.ErrLastItem
		}
		d.Items = append(d.Items[:index], d.Items[index+1:]...)
		return nil
	})
}

// SaveTheme installs a resolved theme. Renders triggered afterwards
// must observe it; the swap happens under the session lock.
func (s *Session) SaveTheme(th theme.Theme) {
	s.mu.Lock()
	s.theme = &th
	s.mu.Unlock()
}

// Store owns all live sessions. State is process-local and expires
// with the session; there is no persistence.
type Store struct {
	sessions *cache.TTLCache[string, *Session]
	ttl      time.Duration
	now      func() time.Time
}

// NewStore constructs a Store with the given session lifetime.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: cache.NewTTLCache[string, *Session](),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session with default invoice data.
func (st *Store) Create() *Session {
	now := st.now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		data:      NewData(now),
	}
	st.sessions.Set(s.ID, s, st.ttl)
	return s
}

// Get returns a live session or a not-found error.
func (st *Store) Get(id string) (*Session, error) {
	s, ok := st.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: session %s", httpx.ErrNotFound, id)
	}
	return s, nil
}

// Drop discards a session immediately.
func (st *Store) Drop(id string) {
	st.sessions.Delete(id)
}
