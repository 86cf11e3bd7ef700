package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Talha-Bayansar/moskent-backend/internal/auth"
)

type fakeRepository struct {
	byEmail map[string]*User
	byID    map[string]*User

	lastLoginUpdates int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

func (r *fakeRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepository) Create(_ context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
	return nil
}

func (r *fakeRepository) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	r.lastLoginUpdates++
	if u, ok := r.byID[id]; ok {
		u.LastLoginAt = &t
	}
	return nil
}

func newTestService(repo Repository) Service {
	// Low cost keeps the bcrypt calls fast in tests.
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4))
}

func TestRegister(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	u, err := svc.Register(context.Background(), "  Imam@Example.COM ", "secret1", "Imam Yusuf")
	require.NoError(t, err)

	assert.Equal(t, "imam@example.com", u.Email, "emails are normalized")
	assert.Equal(t, "Imam Yusuf", u.Name)
	assert.NotEmpty(t, u.ID)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsOrganizationBound)
	assert.NotEqual(t, "secret1", u.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
		userName string
		wantErr  error
	}{
		{"missing email", "  ", "secret1", "Imam", ErrEmailRequired},
		{"short password", "a@b.com", "12345", "Imam", ErrPasswordTooShort},
		{"missing name", "a@b.com", "secret1", "  ", ErrNameRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(newFakeRepository())

			_, err := svc.Register(context.Background(), tc.email, tc.password, tc.userName)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "a@b.com", "secret1", "First")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "A@B.com", "secret1", "Second")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLogin(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	registered, err := svc.Register(context.Background(), "a@b.com", "secret1", "Imam")
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.Equal(t, 1, repo.lastLoginUpdates)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "a@b.com", "secret1", "Imam")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "a@b.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.Login(context.Background(), "nobody@b.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email and wrong password are indistinguishable")
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	u, err := svc.Register(context.Background(), "a@b.com", "secret1", "Imam")
	require.NoError(t, err)
	repo.byID[u.ID].IsActive = false

	_, err = svc.Login(context.Background(), "a@b.com", "secret1")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestProvision(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	u, password, err := svc.Provision(context.Background(), "member@mosque.org", "Brother Ali")
	require.NoError(t, err)

	assert.True(t, u.IsOrganizationBound)
	assert.True(t, u.IsActive)
	assert.Len(t, password, 16)

	// The generated password must actually work for login.
	logged, err := svc.Login(context.Background(), "member@mosque.org", password)
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
}

func TestProvisionDuplicateEmail(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, _, err := svc.Provision(context.Background(), "member@mosque.org", "Brother Ali")
	require.NoError(t, err)

	_, _, err = svc.Provision(context.Background(), "member@mosque.org", "Someone Else")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestGeneratePasswordLengthAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		p := generatePassword()
		assert.Len(t, p, 16)
		assert.False(t, seen[p])
		seen[p] = true
	}
}
