package store

import (
	"context"
	"strconv"
	"sync"
	"time"

	"chainchat/internal/logging"
	"chainchat/internal/types"
)

// SessionStore owns the authoritative in-memory session collection and the
// active-session pointer. Every mutation rewrites the full collection
// through the archive; archive failures are logged, never surfaced.
//
// Invariant: whenever the collection is non-empty, exactly one session is
// active. An empty collection is never observable after construction; the
// store immediately creates a session to restore the invariant.
type SessionStore struct {
	mu       sync.Mutex
	archive  Archive
	log      logging.Logger
	sessions []*types.ChatSession
	activeID string
	lastID   int64
}

func NewSessionStore(ctx context.Context, archive Archive, log logging.Logger) (*SessionStore, error) {
	if log == nil {
		log = logging.Nop()
	}
	sessions, err := archive.Load(ctx)
	if err != nil {
		return nil, err
	}
	s := &SessionStore{
		archive:  archive,
		log:      log,
		sessions: sessions,
	}
	if len(s.sessions) == 0 {
		s.createSessionLocked(ctx)
	} else {
		s.activeID = s.sessions[len(s.sessions)-1].ID
	}
	return s, nil
}

// CreateSession appends a new empty session titled "Chat N", activates it,
// and persists the collection.
func (s *SessionStore) CreateSession(ctx context.Context) *types.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createSessionLocked(ctx).Clone()
}

func (s *SessionStore) createSessionLocked(ctx context.Context) *types.ChatSession {
	session := &types.ChatSession{
		ID:        s.nextIDLocked(),
		Title:     "Chat " + strconv.Itoa(len(s.sessions)+1),
		Messages:  []types.Message{},
		CreatedAt: time.Now().UTC(),
	}
	s.sessions = append(s.sessions, session)
	s.activeID = session.ID
	s.saveLocked(ctx)
	return session
}

// nextIDLocked derives ids from the current time in milliseconds, bumped
// past the previous id so ids stay unique within this process.
func (s *SessionStore) nextIDLocked() string {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// SelectSession moves the active pointer. Unknown ids are a no-op; the UI
// only references ids it has observed.
func (s *SessionStore) SelectSession(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, session := range s.sessions {
		if session.ID == id {
			s.activeID = id
			return true
		}
	}
	return false
}

// DeleteSession removes the session with the given id. If the deleted
// session was active, the last remaining session (in list order) becomes
// active; if none remain a fresh session is created. The archive is written
// exactly once per call regardless of branch.
func (s *SessionStore) DeleteSession(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, session := range s.sessions {
		if session.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return false
	}
	s.sessions = append(s.sessions[:index], s.sessions[index+1:]...)
	if s.activeID == id {
		if len(s.sessions) > 0 {
			s.activeID = s.sessions[len(s.sessions)-1].ID
		} else {
			// createSessionLocked saves; skip the second write below.
			s.createSessionLocked(ctx)
			return true
		}
	}
	s.saveLocked(ctx)
	return true
}

// UpdateMessages replaces the message history of the session with the given
// id and persists the collection. All other sessions and fields are
// untouched. Unknown ids are a no-op.
func (s *SessionStore) UpdateMessages(ctx context.Context, id string, messages []types.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, session := range s.sessions {
		if session.ID == id {
			session.Messages = append([]types.Message(nil), messages...)
			s.saveLocked(ctx)
			return true
		}
	}
	return false
}

// Sessions returns a snapshot of the collection in list order.
func (s *SessionStore) Sessions() []*types.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*types.ChatSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session.Clone())
	}
	return out
}

// Active returns a snapshot of the active session.
func (s *SessionStore) Active() *types.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(s.activeID).Clone()
}

func (s *SessionStore) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Get returns a snapshot of the session with the given id, if present.
func (s *SessionStore) Get(id string) (*types.ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.findLocked(id)
	if session == nil {
		return nil, false
	}
	return session.Clone(), true
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) findLocked(id string) *types.ChatSession {
	for _, session := range s.sessions {
		if session.ID == id {
			return session
		}
	}
	return nil
}

func (s *SessionStore) saveLocked(ctx context.Context) {
	snapshot := make([]*types.ChatSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		snapshot = append(snapshot, session.Clone())
	}
	if err := s.archive.Save(ctx, snapshot); err != nil {
		s.log.Error("session archive save failed", logging.F("error", err.Error()))
	}
}
