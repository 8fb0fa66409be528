package store

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"chainchat/internal/types"
)

const (
	ArchiveBackendFile  = "file"
	ArchiveBackendBbolt = "bbolt"
)

// Archive persists the full session collection. Save replaces the prior
// value wholesale; there are no partial or incremental writes. Load must
// tolerate a missing or corrupt payload by returning an empty collection
// rather than an error, so the session store can always start.
type Archive interface {
	Load(ctx context.Context) ([]*types.ChatSession, error)
	Save(ctx context.Context, sessions []*types.ChatSession) error
	Close() error
}

type FileArchive struct {
	path string
	mu   sync.Mutex
}

type sessionsFile struct {
	Version  int                  `json:"version"`
	Sessions []*types.ChatSession `json:"sessions"`
}

const sessionsSchemaVersion = 1

func NewFileArchive(path string) *FileArchive {
	return &FileArchive{path: path}
}

func (a *FileArchive) Load(ctx context.Context) ([]*types.ChatSession, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	file := sessionsFile{}
	if err := readJSON(a.path, &file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*types.ChatSession{}, nil
		}
		// Corrupt payload degrades to an empty collection.
		return []*types.ChatSession{}, nil
	}
	out := make([]*types.ChatSession, 0, len(file.Sessions))
	for _, session := range file.Sessions {
		if session == nil {
			continue
		}
		out = append(out, session.Clone())
	}
	return out, nil
}

func (a *FileArchive) Save(ctx context.Context, sessions []*types.ChatSession) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if sessions == nil {
		sessions = []*types.ChatSession{}
	}
	return writeJSONAtomic(a.path, sessionsFile{
		Version:  sessionsSchemaVersion,
		Sessions: sessions,
	})
}

func (a *FileArchive) Close() error {
	return nil
}

func OpenArchive(path, backend string) (Archive, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", ArchiveBackendBbolt:
		if strings.TrimSpace(path) == "" {
			return nil, errors.New("db path is required for bbolt archive")
		}
		return NewBboltArchive(path)
	case ArchiveBackendFile:
		if strings.TrimSpace(path) == "" {
			return nil, errors.New("file path is required for file archive")
		}
		return NewFileArchive(path), nil
	default:
		return nil, errors.New("unknown archive backend: " + backend)
	}
}
