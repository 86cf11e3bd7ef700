package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	sessions map[string]*Session

	getCalls       int
	setActiveCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{sessions: make(map[string]*Session)}
}

func (r *fakeRepository) Create(_ context.Context, s *Session) error {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Session, error) {
	r.getCalls++
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepository) SetActiveOrganization(_ context.Context, id string, orgID string) error {
	r.setActiveCalls++
	s, ok := r.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.ActiveOrganizationID = &orgID
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func TestCreateSetsExpiry(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, time.Hour)

	sess, err := svc.Create(context.Background(), "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "user-1", sess.UserID)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), sess.ExpiresAt, time.Minute)
}

func TestGetCachesSession(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, time.Hour)

	sess, err := svc.Create(context.Background(), "user-1")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := svc.Get(context.Background(), sess.ID)
		require.NoError(t, err)
		assert.Equal(t, sess.ID, got.ID)
	}

	assert.Equal(t, 1, repo.getCalls, "repeated reads are served from cache")
}

func TestGetUnknownSession(t *testing.T) {
	svc := NewService(newFakeRepository(), time.Hour)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetExpiredSession(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, -time.Minute)

	sess, err := svc.Create(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestExpiryCheckedOnCachedReads(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 30*time.Millisecond)

	sess, err := svc.Create(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), sess.ID)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = svc.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrExpired, "a cached session still expires")
}

func TestSetActiveOrganizationInvalidatesCache(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, time.Hour)

	sess, err := svc.Create(context.Background(), "user-1")
	require.NoError(t, err)

	// Warm the cache.
	_, err = svc.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Equal(t, 1, repo.getCalls)

	require.NoError(t, svc.SetActiveOrganization(context.Background(), sess.ID, "org-1"))

	got, err := svc.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.getCalls, "the write invalidated the cached copy")
	require.NotNil(t, got.ActiveOrganizationID)
	assert.Equal(t, "org-1", *got.ActiveOrganizationID)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, time.Hour)

	sess, err := svc.Create(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), sess.ID)
	require.NoError(t, err)

	svc.Invalidate(sess.ID)

	_, err = svc.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.getCalls)
}

func TestDeleteRemovesSession(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, time.Hour)

	sess, err := svc.Create(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), sess.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), sess.ID))

	_, err = svc.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
