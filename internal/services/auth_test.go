package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/wishlist-backend/internal/data/repos"
	"github.com/yungbote/wishlist-backend/internal/data/repos/testutil"
	"github.com/yungbote/wishlist-backend/internal/platform/apierr"
	"github.com/yungbote/wishlist-backend/internal/platform/ctxutil"
	"github.com/yungbote/wishlist-backend/internal/platform/dbctx"
)

type memSessions struct {
	mu   sync.Mutex
	m    map[string]uuid.UUID
	gets int
	hits int
}

func newMemSessions() *memSessions { return &memSessions{m: map[string]uuid.UUID{}} }

func (s *memSessions) Get(_ context.Context, token string) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	id, ok := s.m[token]
	if ok {
		s.hits++
	}
	return id, ok, nil
}

func (s *memSessions) Set(_ context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ttl > 0 {
		s.m[token] = userID
	}
	return nil
}

func (s *memSessions) Delete(_ context.Context, tokens ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tokens {
		delete(s.m, t)
	}
	return nil
}

func (s *memSessions) Close() error { return nil }

func (s *memSessions) has(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[token]
	return ok
}

const testSecret = "test-secret"

type authFixture struct {
	svc      AuthService
	users    UserService
	sessions *memSessions
	ctx      context.Context
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	sessions := newMemSessions()
	userRepo := repos.NewUserRepo(db, log)
	svc := NewAuthService(db, log, userRepo, repos.NewUserTokenRepo(db, log), sessions, AuthConfig{
		JWTSecretKey: testSecret,
		AccessTTL:    time.Minute,
		RefreshTTL:   time.Hour,
		BcryptCost:   bcrypt.MinCost,
	})
	return &authFixture{
		svc:      svc,
		users:    NewUserService(db, log, userRepo),
		sessions: sessions,
		ctx:      context.Background(),
	}
}

func TestAuthService_RegisterUser(t *testing.T) {
	f := newAuthFixture(t)

	u, err := f.svc.RegisterUser(f.ctx, " New@Example.com ", "secret1", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", u.Email)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.NotEqual(t, "secret1", u.HashedPassword)

	_, err = f.svc.RegisterUser(f.ctx, "new@example.com", "secret1", "secret1")
	assert.True(t, apierr.Is(err, apierr.CodeConflict))

	_, err = f.svc.RegisterUser(f.ctx, "other@example.com", "secret1", "secret2")
	require.Error(t, err)
	assert.Equal(t, 400, apierr.FromError(err).Status)

	_, err = f.svc.RegisterUser(f.ctx, "", "secret1", "secret1")
	assert.True(t, apierr.Is(err, apierr.CodeBadParams))

	_, err = f.svc.RegisterUser(f.ctx, "short@example.com", "abc", "abc")
	assert.True(t, apierr.Is(err, apierr.CodeValidation))
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.RegisterUser(f.ctx, "a@example.com", "secret1", "secret1")
	require.NoError(t, err)

	_, _, _, err = f.svc.LoginUser(f.ctx, "a@example.com", "wrong-pass")
	assert.True(t, apierr.Is(err, apierr.CodeBadCredentials))
	_, _, _, err = f.svc.LoginUser(f.ctx, "nobody@example.com", "secret1")
	assert.True(t, apierr.Is(err, apierr.CodeBadCredentials))

	u, access, refresh, err := f.svc.LoginUser(f.ctx, "A@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	ctx, err := f.svc.SetContextFromToken(f.ctx, access)
	require.NoError(t, err)
	rd := ctxutil.GetRequestData(ctx)
	require.NotNil(t, rd)
	assert.Equal(t, u.ID, rd.UserID)
	assert.Equal(t, access, rd.TokenString)
	assert.True(t, f.sessions.has(access))

	// second lookup is served from the session cache
	_, err = f.svc.SetContextFromToken(f.ctx, access)
	require.NoError(t, err)
	assert.Equal(t, 1, f.sessions.hits)

	me, err := f.users.GetMe(dbctx.Context{Ctx: ctx})
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)

	_, u2Access, _, err := f.svc.LoginUser(f.ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEqual(t, access, u2Access)
}

func TestAuthService_SetContextFromTokenRejects(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.SetContextFromToken(f.ctx, "")
	assert.True(t, apierr.Is(err, apierr.CodeUnauthorized))

	_, err = f.svc.SetContextFromToken(f.ctx, "not-a-jwt")
	assert.True(t, apierr.Is(err, apierr.CodeUnauthorized))

	// well signed, but never issued
	claims := JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = f.svc.SetContextFromToken(f.ctx, forged)
	assert.True(t, apierr.Is(err, apierr.CodeUnauthorized))

	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
	require.NoError(t, err)
	_, err = f.svc.SetContextFromToken(f.ctx, wrongKey)
	assert.True(t, apierr.Is(err, apierr.CodeUnauthorized))

	expired := JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	old, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = f.svc.SetContextFromToken(f.ctx, old)
	assert.True(t, apierr.Is(err, apierr.CodeUnauthorized))
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.RegisterUser(f.ctx, "a@example.com", "secret1", "secret1")
	require.NoError(t, err)
	_, access, _, err := f.svc.LoginUser(f.ctx, "a@example.com", "secret1")
	require.NoError(t, err)

	ctx, err := f.svc.SetContextFromToken(f.ctx, access)
	require.NoError(t, err)
	require.NoError(t, f.svc.LogoutUser(ctx))
	assert.False(t, f.sessions.has(access))

	_, err = f.svc.SetContextFromToken(f.ctx, access)
	assert.True(t, apierr.Is(err, apierr.CodeUnauthorized))

	assert.True(t, apierr.Is(f.svc.LogoutUser(f.ctx), apierr.CodeUnauthorized))
}

func TestAuthService_Refresh(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.RegisterUser(f.ctx, "a@example.com", "secret1", "secret1")
	require.NoError(t, err)
	_, access, refresh, err := f.svc.LoginUser(f.ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	_, err = f.svc.SetContextFromToken(f.ctx, access)
	require.NoError(t, err)

	newAccess, newRefresh, err := f.svc.RefreshUser(f.ctx, refresh)
	require.NoError(t, err)
	assert.NotEqual(t, access, newAccess)
	assert.NotEqual(t, refresh, newRefresh)

	_, err = f.svc.SetContextFromToken(f.ctx, access)
	assert.True(t, apierr.Is(err, apierr.CodeUnauthorized))
	_, err = f.svc.SetContextFromToken(f.ctx, newAccess)
	require.NoError(t, err)

	_, _, err = f.svc.RefreshUser(f.ctx, refresh)
	assert.True(t, apierr.Is(err, apierr.CodeUnauthorized))
	_, _, err = f.svc.RefreshUser(f.ctx, "")
	assert.True(t, apierr.Is(err, apierr.CodeUnauthorized))
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.RegisterUser(f.ctx, "a@example.com", "secret1", "secret1")
	require.NoError(t, err)
	_, current, _, err := f.svc.LoginUser(f.ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	_, other, _, err := f.svc.LoginUser(f.ctx, "a@example.com", "secret1")
	require.NoError(t, err)

	ctx, err := f.svc.SetContextFromToken(f.ctx, current)
	require.NoError(t, err)

	err = f.svc.ChangePassword(ctx, "wrong-pass", "secret2")
	assert.True(t, apierr.Is(err, apierr.CodeBadCredentials))
	err = f.svc.ChangePassword(ctx, "secret1", "x")
	assert.True(t, apierr.Is(err, apierr.CodeValidation))

	require.NoError(t, f.svc.ChangePassword(ctx, "secret1", "secret2"))

	_, err = f.svc.SetContextFromToken(f.ctx, current)
	assert.NoError(t, err)
	_, err = f.svc.SetContextFromToken(f.ctx, other)
	assert.True(t, apierr.Is(err, apierr.CodeUnauthorized))

	_, _, _, err = f.svc.LoginUser(f.ctx, "a@example.com", "secret1")
	assert.True(t, apierr.Is(err, apierr.CodeBadCredentials))
	_, _, _, err = f.svc.LoginUser(f.ctx, "a@example.com", "secret2")
	assert.NoError(t, err)
}
