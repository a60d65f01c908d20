// Package session owns the active user of the client.
//
// A Store keeps the authoritative in-memory User, mirrors every change to a
// key/value store and, on read, reconciles memory with what was persisted by
// an earlier run. It is constructed explicitly by the composition root.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/sedaily/internal/client/events"
	"github.com/dmitrijs2005/sedaily/internal/client/models"
	"github.com/dmitrijs2005/sedaily/internal/logging"
)

// UserKey is the key the active user is persisted under.
const UserKey = "user"

// KeyValueStore is the persistence the Store needs. Get returns (nil, nil)
// for a missing key. Every metadata.Repository satisfies it.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CacheCleaner drops a disk cache bucket.
type CacheCleaner interface {
	Clean(ctx context.Context, key models.DiskKey) error
}

// Publisher broadcasts payload-less events.
type Publisher interface {
	Publish(ctx context.Context, event events.Event)
}

// Store is safe for concurrent use: each operation runs its mutate and
// persist steps under one lock, so no caller observes a half-applied change.
type Store struct {
	kv        KeyValueStore
	cache     CacheCleaner
	publisher Publisher
	log       logging.Logger

	mu      sync.Mutex
	current models.User
}

// NewStore returns a Store holding the default user.
func NewStore(kv KeyValueStore, cache CacheCleaner, publisher Publisher, log logging.Logger) *Store {
	return &Store{
		kv:        kv,
		cache:     cache,
		publisher: publisher,
		log:       log.With("component", "session"),
		current:   models.DefaultUser(),
	}
}

// ActiveUser returns the authoritative user, reconciling memory with the
// persisted copy first:
//
//   - persisted equals memory: nothing is written;
//   - memory is still the default and a real session was persisted: the
//     persisted user is adopted;
//   - otherwise memory wins and overwrites the persisted copy.
//
// Storage failures are logged; the returned User is always valid.
func (s *Store) ActiveUser(ctx context.Context) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, ok := s.load(ctx)
	if ok && saved.Equal(s.current) {
		return s.current
	}

	if ok && s.current.IsDefault() && !saved.IsDefault() {
		s.log.Info(ctx, "restored persisted session", "username", saved.UsernameOrEmail)
		s.current = saved
		s.persistLogged(ctx, s.current)
		return s.current
	}

	if ok && !saved.IsDefault() && !s.current.IsDefault() {
		// two different real sessions: memory wins without a conflict signal
		s.log.Warn(ctx, "persisted session differs from active one, overwriting",
			"persisted", saved.UsernameOrEmail, "active", s.current.UsernameOrEmail)
	}

	s.persistLogged(ctx, s.current)
	return s.current
}

// CurrentUser returns the in-memory user without touching storage.
func (s *Store) CurrentUser() models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetCurrentUser replaces the active user and persists it before returning.
// Setting a user equal to the current one is a no-op. On a persistence
// error the in-memory user is still replaced.
func (s *Store) SetCurrentUser(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(ctx, u)
}

// IsCurrentUserLoggedIn reports whether the in-memory user has a token.
func (s *Store) IsCurrentUserLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.IsLoggedIn()
}

// Logout resets the active user to the default, drops the podcast disk cache
// and publishes events.LoginChanged exactly once. The event is published even
// when persisting or cleaning fails; those errors are returned joined.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	persistErr := s.setLocked(ctx, models.DefaultUser())
	s.mu.Unlock()

	cleanErr := s.cache.Clean(ctx, models.DiskKeyPodcastFolder)
	if cleanErr != nil {
		s.log.Error(ctx, "failed to clean podcast cache", "error", cleanErr)
		cleanErr = fmt.Errorf("clean podcast cache: %w", cleanErr)
	}

	s.publisher.Publish(ctx, events.LoginChanged)

	return errors.Join(persistErr, cleanErr)
}

func (s *Store) setLocked(ctx context.Context, u models.User) error {
	if u.Equal(s.current) {
		return nil
	}
	s.current = u
	if err := s.persist(ctx, u); err != nil {
		s.log.Error(ctx, "failed to persist user", "error", err)
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

// load reads the persisted user. Absent, unreadable, empty (including a
// JSON null) and undecodable values all report ok == false.
func (s *Store) load(ctx context.Context) (models.User, bool) {
	data, err := s.kv.Get(ctx, UserKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read persisted user", "error", err)
		return models.User{}, false
	}
	if data == nil {
		return models.User{}, false
	}
	if v := bytes.TrimSpace(data); len(v) == 0 || bytes.Equal(v, []byte("null")) {
		s.log.Warn(ctx, "ignoring empty persisted user")
		return models.User{}, false
	}

	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		s.log.Warn(ctx, "ignoring undecodable persisted user", "error", err)
		return models.User{}, false
	}
	return u, true
}

func (s *Store) persist(ctx context.Context, u models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, UserKey, data)
}

func (s *Store) persistLogged(ctx context.Context, u models.User) {
	if err := s.persist(ctx, u); err != nil {
		s.log.Error(ctx, "failed to persist user", "error", err)
	}
}
