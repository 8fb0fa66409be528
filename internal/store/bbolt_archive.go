package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"chainchat/internal/types"
)

var (
	bucketSessions = []byte("sessions")
	keySessions    = []byte("all")
)

type BboltArchive struct {
	db *bolt.DB
}

func NewBboltArchive(path string) (*BboltArchive, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("archive db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initBboltSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BboltArchive{db: db}, nil
}

func initBboltSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSessions)
		return err
	})
}

func (a *BboltArchive) Load(ctx context.Context) ([]*types.ChatSession, error) {
	var raw []byte
	err := a.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			return nil
		}
		if value := bucket.Get(keySessions); value != nil {
			raw = append([]byte(nil), value...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []*types.ChatSession{}, nil
	}
	file := sessionsFile{}
	if err := json.Unmarshal(raw, &file); err != nil {
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

func (a *BboltArchive) Save(ctx context.Context, sessions []*types.ChatSession) error {
	if sessions == nil {
		sessions = []*types.ChatSession{}
	}
	raw, err := json.Marshal(sessionsFile{
		Version:  sessionsSchemaVersion,
		Sessions: sessions,
	})
	if err != nil {
		return err
	}
	return a.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			return errors.New("sessions bucket missing")
		}
		return bucket.Put(keySessions, raw)
	})
}

func (a *BboltArchive) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}
