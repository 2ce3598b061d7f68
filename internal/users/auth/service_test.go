// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haminhtu/librarium/internal/platform/apperr"
	"github.com/haminhtu/librarium/internal/platform/sec"
	"github.com/haminhtu/librarium/internal/users/auth"
)

// fakeUserRepository is an in-memory UserRepository.
type fakeUserRepository struct {
	users map[string]*auth.User // keyed by ID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("Resource")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperr.NotFound("Resource")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("Resource")
}

// fakeSessionRepository is an in-memory SessionRepository. TTLs are ignored;
// expiry is Redis behavior, not service behavior.
type fakeSessionRepository struct {
	sessions map[string]string
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]string{}}
}

func (f *fakeSessionRepository) Set(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	f.sessions[tokenHash] = userID
	return nil
}

func (f *fakeSessionRepository) Get(_ context.Context, tokenHash string) (string, error) {
	if userID, ok := f.sessions[tokenHash]; ok {
		return userID, nil
	}
	return "", apperr.Unauthorized("Invalid or expired refresh token")
}

func (f *fakeSessionRepository) Delete(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

// fakeTokenProvider mints predictable access tokens.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "access-" + userID, nil
}

func newService(users *fakeUserRepository, sessions *fakeSessionRepository) *auth.Service {
	return auth.NewService(users, sessions, fakeTokenProvider{})
}

/*
TestRegister_NewMember verifies registration hashes the password and assigns
the member role.
*/
func TestRegister_NewMember(t *testing.T) {
	users := newFakeUserRepository()
	service := newService(users, newFakeSessionRepository())

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleMember, user.Role)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct horse battery", user.PasswordHash))
}

/*
TestRegister_DuplicateIdentity verifies email and username conflicts are
reported as client-safe conflicts.
*/
func TestRegister_DuplicateIdentity(t *testing.T) {
	users := newFakeUserRepository()
	service := newService(users, newFakeSessionRepository())

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "reader", Email: "reader@example.com", Password: "first password",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "other", Email: "reader@example.com", Password: "second password",
	})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "reader", Email: "new@example.com", Password: "second password",
	})
	appError = apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

/*
TestLogin_WrongPassword verifies bad credentials yield a generic 401 without
revealing whether the account exists.
*/
func TestLogin_WrongPassword(t *testing.T) {
	users := newFakeUserRepository()
	service := newService(users, newFakeSessionRepository())

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "reader", Email: "reader@example.com", Password: "the real password",
	})
	require.NoError(t, err)

	for _, login := range []string{"reader", "ghost"} {
		_, err := service.Login(context.Background(), auth.LoginInput{
			Login: login, Password: "not the password",
		})
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "Invalid login credentials", appError.Message)
	}
}

/*
TestRefresh_RotatesSession verifies a used refresh token is revoked and the
rotated token opens a fresh session.
*/
func TestRefresh_RotatesSession(t *testing.T) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := newService(users, sessions)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "reader", Email: "reader@example.com", Password: "the real password",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login: "reader", Password: "the real password",
	})
	require.NoError(t, err)

	rotated, err := service.RefreshSession(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// Replaying the original token fails: the session was consumed
	_, err = service.RefreshSession(context.Background(), session.RefreshToken)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
}

/*
TestLogout_Idempotent verifies logging out twice is not an error.
*/
func TestLogout_Idempotent(t *testing.T) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := newService(users, sessions)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "reader", Email: "reader@example.com", Password: "the real password",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login: "reader", Password: "the real password",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, sessions.sessions)
}
