package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/semearlages/semearapi/internal/auth"
	"github.com/semearlages/semearapi/pkg"
)

const testPassword = "admin123"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestService(t *testing.T, store auth.Store) *auth.Service {
	t.Helper()
	ts := auth.NewTokenService(testSecret, 24*time.Hour)
	return auth.NewService(store, ts, bcrypt.MinCost)
}

func addTestAdmin(t *testing.T, store *auth.MemoryStore, email, password string) *auth.Admin {
	t.Helper()
	hash, err := pkg.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	admin, err := store.Add(context.Background(), auth.Admin{Email: email, PasswordHash: hash})
	require.NoError(t, err)
	return admin
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemoryStore()
	admin := addTestAdmin(t, store, "admin@projetosemear.org.br", testPassword)
	s := newTestService(t, store)

	res, err := s.Login(ctx, "  Admin@ProjetoSemear.org.br ", testPassword)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, admin.ID, res.Admin.ID)
	assert.Equal(t, "admin@projetosemear.org.br", res.Admin.Email)
	assert.NotEmpty(t, res.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), res.ExpiresAt, 5*time.Second)

	claims, ok := s.Tokens().Verify(res.Token)
	require.True(t, ok)
	assert.Equal(t, "admin@projetosemear.org.br", claims.Subject)
}

func TestService_Login_Failures(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemoryStore()
	addTestAdmin(t, store, "admin@projetosemear.org.br", testPassword)
	s := newTestService(t, store)

	res, err := s.Login(ctx, "admin@projetosemear.org.br", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Nil(t, res)

	_, err = s.Login(ctx, gofakeit.Email(), testPassword)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = s.Login(ctx, "", testPassword)
	assert.ErrorIs(t, err, auth.ErrMissingCredentials)

	_, err = s.Login(ctx, "admin@projetosemear.org.br", "   ")
	assert.ErrorIs(t, err, auth.ErrMissingCredentials)
}

func TestService_Login_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	s := newTestService(t, store)

	store.EXPECT().
		GetByEmail(gomock.Any(), "admin@projetosemear.org.br").
		Return(nil, errors.New("connection reset"))

	_, err := s.Login(context.Background(), "admin@projetosemear.org.br", testPassword)
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemoryStore()
	admin := addTestAdmin(t, store, "admin@projetosemear.org.br", testPassword)
	other := addTestAdmin(t, store, "editor@projetosemear.org.br", testPassword)
	s := newTestService(t, store)

	adminToken, _, err := s.Tokens().Issue(admin.Email)
	require.NoError(t, err)
	otherToken, _, err := s.Tokens().Issue(other.Email)
	require.NoError(t, err)
	unknownToken, _, err := s.Tokens().Issue("ghost@projetosemear.org.br")
	require.NoError(t, err)
	noSubjectToken, _, err := s.Tokens().Issue("")
	require.NoError(t, err)
	foreignToken, _, err := auth.NewTokenService([]byte("foreign"), time.Hour).Issue(admin.Email)
	require.NoError(t, err)

	testCases := []struct {
		name        string
		cookie      string
		bearer      string
		expectedID  int
		expectedErr error
	}{
		{name: "cookie only", cookie: adminToken, expectedID: admin.ID},
		{name: "bearer only", bearer: otherToken, expectedID: other.ID},
		{name: "cookie wins over header", cookie: adminToken, bearer: otherToken, expectedID: admin.ID},
		{name: "invalid cookie is not rescued by valid header", cookie: "garbage", bearer: otherToken, expectedErr: auth.ErrUnauthenticated},
		{name: "no token", expectedErr: auth.ErrUnauthenticated},
		{name: "unknown subject", cookie: unknownToken, expectedErr: auth.ErrUnauthenticated},
		{name: "empty subject", cookie: noSubjectToken, expectedErr: auth.ErrUnauthenticated},
		{name: "foreign secret", bearer: foreignToken, expectedErr: auth.ErrUnauthenticated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Authenticate(ctx, tc.cookie, tc.bearer)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, got.ID)
		})
	}
}

var errDBDown = errors.New("db down")

func TestService_Authenticate_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	s := newTestService(t, store)

	token, _, err := s.Tokens().Issue("admin@projetosemear.org.br")
	require.NoError(t, err)

	store.EXPECT().
		GetByEmail(gomock.Any(), "admin@projetosemear.org.br").
		Return(nil, errDBDown)

	admin, err := s.Authenticate(context.Background(), token, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errDBDown)
	assert.NotErrorIs(t, err, auth.ErrUnauthenticated)
	assert.Nil(t, admin)
}

func TestAdminContext(t *testing.T) {
	_, ok := auth.AdminFromContext(context.Background())
	assert.False(t, ok)

	_, ok = auth.AdminFromContext(auth.NewContextWithAdmin(context.Background(), nil))
	assert.False(t, ok)

	admin := &auth.Admin{ID: 1, Email: "admin@projetosemear.org.br"}
	got, ok := auth.AdminFromContext(auth.NewContextWithAdmin(context.Background(), admin))
	require.True(t, ok)
	assert.Equal(t, admin, got)
}
