package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"articles-admin/internal/domain/entity"
)

const testSecret = "k3v9-Lq2x-Zp7w-Rt5m-Hb8n-Yc4d-Fg6j"

type memUsers struct {
	users map[string]*entity.User
	err   error
}

func (m *memUsers) Get(_ context.Context, id int64) (*entity.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users[username], nil
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.users[u.Username] = u
	return nil
}

func (m *memUsers) Count(context.Context) (int64, error) { return int64(len(m.users)), nil }

func newUsers(t *testing.T) *memUsers {
	t.Helper()
	hash := func(pw string) string {
		h, err := HashPassword(pw, bcrypt.MinCost)
		require.NoError(t, err)
		return h
	}
	return &memUsers{users: map[string]*entity.User{
		"admin": {ID: 1, Username: "admin", PasswordHash: hash("admin"), Roles: []string{entity.RoleAdmin}},
		"user":  {ID: 2, Username: "user", PasswordHash: hash("user")},
	}}
}

func newService(t *testing.T, users *memUsers, now func() time.Time) *AuthService {
	t.Helper()
	provider, err := NewUserStoreProvider(users, bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(provider, NewTokenIssuer([]byte(testSecret), time.Hour, now), users)
}

func TestUserStoreProvider_Authenticate(t *testing.T) {
	users := newUsers(t)
	p, err := NewUserStoreProvider(users, bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, "user_store", p.Name())

	u, err := p.Authenticate(context.Background(), Credentials{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	for _, creds := range []Credentials{
		{Username: "admin", Password: "wrong"},
		{Username: "ghost", Password: "admin"},
		{Username: "", Password: "admin"},
		{Username: "admin", Password: ""},
	} {
		_, err := p.Authenticate(context.Background(), creds)
		assert.ErrorIs(t, err, ErrInvalidCredentials, "creds %+v", creds)
	}

	users.err = errors.New("db down")
	_, err = p.Authenticate(context.Background(), Credentials{Username: "admin", Password: "admin"})
	assert.ErrorContains(t, err, "db down")
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	now := time.Date(2025, 7, 19, 10, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer([]byte(testSecret), time.Hour, func() time.Time { return now })

	token, err := issuer.Issue(&entity.User{Username: "admin", Roles: []string{entity.RoleAdmin}})
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.ElementsMatch(t, []string{entity.RoleAdmin, entity.RoleUser}, claims.Roles)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestTokenIssuer_Rejects(t *testing.T) {
	now := time.Date(2025, 7, 19, 10, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer([]byte(testSecret), time.Hour, func() time.Time { return now })
	valid, err := issuer.Issue(&entity.User{Username: "admin"})
	require.NoError(t, err)

	later := NewTokenIssuer([]byte(testSecret), time.Hour, func() time.Time { return now.Add(2 * time.Hour) })
	other := NewTokenIssuer([]byte(strings.Repeat("x", 8)+testSecret), time.Hour, func() time.Time { return now })

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "admin", "exp": now.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "admin"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		issuer *TokenIssuer
		token  string
	}{
		{"empty", issuer, ""},
		{"garbage", issuer, "not.a.jwt"},
		{"expired", later, valid},
		{"wrong secret", other, valid},
		{"alg none", issuer, none},
		{"missing exp", issuer, noExp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.issuer.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	users := newUsers(t)
	svc := newService(t, users, nil)

	token, user, err := svc.Login(context.Background(), Credentials{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	got, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, _, err = svc.Login(context.Background(), Credentials{Username: "admin", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Authenticate_DeletedUser(t *testing.T) {
	users := newUsers(t)
	svc := newService(t, users, nil)

	token, _, err := svc.Login(context.Background(), Credentials{Username: "user", Password: "user"})
	require.NoError(t, err)

	delete(users.users, "user")
	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRolePolicy_CanAccess(t *testing.T) {
	p := DefaultPolicy()
	admin := &entity.User{Username: "admin", Roles: []string{entity.RoleAdmin}}
	user := &entity.User{Username: "user"}

	for _, action := range []string{ActionArticlesList, ActionArticlesCreate, ActionArticlesUpdate, ActionArticlesDelete} {
		assert.True(t, p.CanAccess(admin, action), action)
		assert.False(t, p.CanAccess(user, action), action)
		assert.False(t, p.CanAccess(nil, action), action)
	}
	assert.False(t, p.CanAccess(admin, "articles:publish"))
	assert.False(t, p.CanAccess(admin, ""))
}

func TestValidateSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{"strong", testSecret, false},
		{"too short", "short-secret", true},
		{"repeated", strings.Repeat("a", 40), true},
		{"placeholder prefix", "your-256-bit-secret-012345678901", true},
		{"placeholder repeated", strings.Repeat("secret", 6), true},
		{"keyboard run", "qwertyuiop-0123456789-0123456789", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSecret(tt.secret)
			if tt.wantErr {
				assert.Error(t, err)
				assert.NotContains(t, err.Error(), tt.secret)
				return
			}
			assert.NoError(t, err)
		})
	}
}
