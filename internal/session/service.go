package session

import (
	"context"
	"sync"
	"time"
)

// Service defines business logic for sessions.
//
// Reads go through a small in-memory cache so repeated guard resolutions on
// the same session do not hit the database each time. Every write to a
// session invalidates its cached copy; Invalidate can also be called
// directly to force the next Get to re-fetch.
type Service interface {
	Create(ctx context.Context, userID string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	SetActiveOrganization(ctx context.Context, id string, orgID string) error
	Invalidate(id string)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
	ttl  time.Duration

	mu    sync.RWMutex
	cache map[string]*Session
}

// NewService creates a new session Service with the given session TTL.
func NewService(repo Repository, ttl time.Duration) Service {
	return &service{
		repo:  repo,
		ttl:   ttl,
		cache: make(map[string]*Session),
	}
}

func (s *service) Create(ctx context.Context, userID string) (*Session, error) {
	sess := &Session{
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *service) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	cached, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		if cached.Expired(time.Now().UTC()) {
			s.Invalidate(id)
			return nil, ErrExpired
		}
		return cached, nil
	}

	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Expired(time.Now().UTC()) {
		return nil, ErrExpired
	}

	s.mu.Lock()
	s.cache[id] = sess
	s.mu.Unlock()

	return sess, nil
}

func (s *service) SetActiveOrganization(ctx context.Context, id string, orgID string) error {
	if err := s.repo.SetActiveOrganization(ctx, id, orgID); err != nil {
		return err
	}
	s.Invalidate(id)
	return nil
}

func (s *service) Invalidate(id string) {
	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.Invalidate(id)
	return s.repo.Delete(ctx, id)
}
