package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/prima-crm/prima-crm/internal/shared"
)

type mockAuthRepo struct {
	users    map[string]*User
	sessions map[string]Session
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (m *mockAuthRepo) CreateSession(ctx context.Context, sess Session) error {
	m.sessions[sess.ID] = sess
	return nil
}

func (m *mockAuthRepo) DeleteSession(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func newTestService(t *testing.T) (*Service, *mockAuthRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia-123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &mockAuthRepo{
		users: map[string]*User{
			"sari@prima.co.id": {
				ID:           7,
				Nama:         "Sari",
				Email:        "sari@prima.co.id",
				PasswordHash: string(hash),
				RoleID:       29,
				IsActive:     true,
			},
		},
		sessions: map[string]Session{},
	}
	return NewService(repo, client, time.Hour), repo
}

func TestLoginIssuesResolvableToken(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	token, user, err := svc.Login(ctx, "sari@prima.co.id", "rahasia-123", "10.0.0.1", "test-agent")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, int64(7), user.ID)
	assert.Contains(t, repo.sessions, token)

	actor, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, shared.Actor{ID: 7, RoleID: 29, Name: "Sari"}, actor)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "sari@prima.co.id", "salah", "", "")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "unknown@prima.co.id", "rahasia-123", "", "")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateRejectsInactiveUser(t *testing.T) {
	svc, repo := newTestService(t)
	repo.users["sari@prima.co.id"].IsActive = false

	_, err := svc.Authenticate(context.Background(), "sari@prima.co.id", "rahasia-123")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "sari@prima.co.id", "rahasia-123", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.Resolve(ctx, token)
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	assert.NotContains(t, repo.sessions, token)
}

func TestMiddlewareResolvesActor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	token, _, err := svc.Login(ctx, "sari@prima.co.id", "rahasia-123", "", "")
	require.NoError(t, err)

	var gotActor shared.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor, _ = shared.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(svc, false)(next)

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(7), gotActor.ID)

	// missing and stale tokens both get the 401 envelope.
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/leads", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
