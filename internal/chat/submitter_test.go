package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"chainchat/internal/logging"
	"chainchat/internal/store"
	"chainchat/internal/types"
)

type memoryArchive struct {
	mu       sync.Mutex
	sessions []*types.ChatSession
}

func (a *memoryArchive) Load(ctx context.Context) ([]*types.ChatSession, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*types.ChatSession(nil), a.sessions...), nil
}

func (a *memoryArchive) Save(ctx context.Context, sessions []*types.ChatSession) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions = sessions
	return nil
}

func (a *memoryArchive) Close() error { return nil }

type fakeService struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (f *fakeService) Send(ctx context.Context, message string, history []types.Message) (string, error) {
	f.mu.Lock()
	call := f.calls
	f.calls++
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if call < len(f.errs) && f.errs[call] != nil {
		return "", f.errs[call]
	}
	if call < len(f.replies) {
		return f.replies[call], nil
	}
	return "ok", nil
}

func newTestStore(t *testing.T) *store.SessionStore {
	t.Helper()
	s, err := store.NewSessionStore(context.Background(), &memoryArchive{}, logging.Nop())
	if err != nil {
		t.Fatalf("NewSessionStore: %v", err)
	}
	return s
}

func TestSubmitAppendsUserThenAssistant(t *testing.T) {
	ctx := context.Background()
	sessions := newTestStore(t)
	service := &fakeService{replies: []string{"hello to you"}}
	submitter := NewSubmitter(sessions, service, logging.Nop())

	id := sessions.ActiveID()
	if err := submitter.Submit(ctx, id, "hello"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	session, _ := sessions.Get(id)
	if len(session.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(session.Messages))
	}
	if session.Messages[0].Role != types.RoleUser || session.Messages[0].Text != "hello" {
		t.Fatalf("unexpected user message: %+v", session.Messages[0])
	}
	if session.Messages[1].Role != types.RoleAssistant || session.Messages[1].Text != "hello to you" {
		t.Fatalf("unexpected assistant message: %+v", session.Messages[1])
	}
}

func TestSubmitOptimisticAppendVisibleBeforeReply(t *testing.T) {
	ctx := context.Background()
	sessions := newTestStore(t)
	service := &fakeService{
		replies: []string{"done"},
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	submitter := NewSubmitter(sessions, service, logging.Nop())
	id := sessions.ActiveID()

	done := make(chan error, 1)
	go func() { done <- submitter.Submit(ctx, id, "hello") }()

	select {
	case <-service.entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("remote call never issued")
	}

	// The remote call is in flight; the user message must already be there.
	session, _ := sessions.Get(id)
	if len(session.Messages) != 1 || session.Messages[0].Role != types.RoleUser {
		t.Fatalf("user message not visible before reply: %+v", session.Messages)
	}

	close(service.release)
	if err := <-done; err != nil {
		t.Fatalf("Submit: %v", err)
	}
	session, _ = sessions.Get(id)
	if len(session.Messages) != 2 {
		t.Fatalf("expected reply appended, got %d messages", len(session.Messages))
	}
}

func TestSubmitFailureAppendsFallback(t *testing.T) {
	ctx := context.Background()
	sessions := newTestStore(t)
	service := &fakeService{errs: []error{errors.New("connection refused")}}
	submitter := NewSubmitter(sessions, service, logging.Nop())
	id := sessions.ActiveID()

	if err := submitter.Submit(ctx, id, "hello"); err != nil {
		t.Fatalf("Submit must not surface remote failure: %v", err)
	}
	session, _ := sessions.Get(id)
	if len(session.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(session.Messages))
	}
	if session.Messages[1].Role != types.RoleAssistant || session.Messages[1].Text != FallbackReply {
		t.Fatalf("expected fallback reply, got %+v", session.Messages[1])
	}
}

func TestSubmitEmptyPrompt(t *testing.T) {
	sessions := newTestStore(t)
	submitter := NewSubmitter(sessions, &fakeService{}, logging.Nop())
	if err := submitter.Submit(context.Background(), sessions.ActiveID(), "   "); err == nil {
		t.Fatalf("expected error for empty prompt")
	}
	session := sessions.Active()
	if len(session.Messages) != 0 {
		t.Fatalf("empty prompt must not touch history")
	}
}

func TestSubmitUnknownSession(t *testing.T) {
	sessions := newTestStore(t)
	submitter := NewSubmitter(sessions, &fakeService{}, logging.Nop())
	if err := submitter.Submit(context.Background(), "missing", "hello"); err == nil {
		t.Fatalf("expected error for unknown session")
	}
}

func TestSubmitWritesToOriginatingSessionAfterSwitch(t *testing.T) {
	ctx := context.Background()
	sessions := newTestStore(t)
	service := &fakeService{
		replies: []string{"late reply"},
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	submitter := NewSubmitter(sessions, service, logging.Nop())
	first := sessions.ActiveID()

	done := make(chan error, 1)
	go func() { done <- submitter.Submit(ctx, first, "hello") }()
	<-service.entered

	// User switches away while the reply is pending.
	second := sessions.CreateSession(ctx)
	close(service.release)
	if err := <-done; err != nil {
		t.Fatalf("Submit: %v", err)
	}

	original, _ := sessions.Get(first)
	if len(original.Messages) != 2 || original.Messages[1].Text != "late reply" {
		t.Fatalf("reply must land in originating session: %+v", original.Messages)
	}
	switched, _ := sessions.Get(second.ID)
	if len(switched.Messages) != 0 {
		t.Fatalf("reply leaked into the new active session")
	}
}

func TestSubmitSerializesPerSession(t *testing.T) {
	ctx := context.Background()
	sessions := newTestStore(t)
	service := &fakeService{replies: []string{"first", "second"}}
	submitter := NewSubmitter(sessions, service, logging.Nop())
	id := sessions.ActiveID()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = submitter.Submit(ctx, id, "one")
	}()
	_ = submitter.Submit(ctx, id, "two")
	wg.Wait()

	session, _ := sessions.Get(id)
	if len(session.Messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(session.Messages))
	}
	// Whatever order the prompts won the lock in, each user message is
	// followed directly by its assistant reply.
	for i := 0; i < 4; i += 2 {
		if session.Messages[i].Role != types.RoleUser {
			t.Fatalf("message %d: expected user, got %s", i, session.Messages[i].Role)
		}
		if session.Messages[i+1].Role != types.RoleAssistant {
			t.Fatalf("message %d: expected assistant, got %s", i+1, session.Messages[i+1].Role)
		}
	}
}
