package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"chainchat/internal/logging"
	"chainchat/internal/store"
	"chainchat/internal/types"
)

// FallbackReply is appended in place of an assistant reply when the remote
// call fails for any reason.
const FallbackReply = "An error occurred while processing your message."

// ChatService is the remote collaborator. *client.Client satisfies it.
type ChatService interface {
	Send(ctx context.Context, message string, history []types.Message) (string, error)
}

// Submitter runs the prompt submission protocol: optimistic local append,
// remote call, then reconciliation of the reply or a fixed fallback into
// the session store. A submission never fails past this boundary; remote
// errors are logged and replaced by FallbackReply.
//
// Submissions are serialized per session: a second prompt for the same
// session waits for the first's round-trip to finish before appending, so
// user and assistant messages land in strict prompt order. Submissions to
// different sessions run concurrently. A reply arriving for a session that
// is no longer active is still written into that session's history.
type Submitter struct {
	store   *store.SessionStore
	service ChatService
	log     logging.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSubmitter(sessions *store.SessionStore, service ChatService, log logging.Logger) *Submitter {
	if log == nil {
		log = logging.Nop()
	}
	return &Submitter{
		store:   sessions,
		service: service,
		log:     log,
		locks:   map[string]*sync.Mutex{},
	}
}

func (s *Submitter) Submit(ctx context.Context, sessionID, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return errors.New("prompt is required")
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, ok := s.store.Get(sessionID)
	if !ok {
		return errors.New("unknown session: " + sessionID)
	}

	history := append(append([]types.Message(nil), session.Messages...), types.UserMessage(prompt))
	s.store.UpdateMessages(ctx, sessionID, history)

	reply, err := s.service.Send(ctx, prompt, history)
	if err != nil {
		s.log.Error("chat request failed",
			logging.F("session", sessionID),
			logging.F("error", err.Error()))
		reply = FallbackReply
	}
	s.store.UpdateMessages(ctx, sessionID, append(history, types.AssistantMessage(reply)))
	return nil
}

func (s *Submitter) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}
