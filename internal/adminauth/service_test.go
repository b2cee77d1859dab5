package adminauth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jambidev/barokah/internal/auth"
	"github.com/jambidev/barokah/internal/models"
)

type fakeUserRepo struct {
	users map[string]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]models.User{}}
}

func (f *fakeUserRepo) Insert(ctx context.Context, user models.User) error {
	if _, exists := f.users[user.Username]; exists {
		return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	}
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return models.User{}, mongo.ErrNoDocuments
	}
	return user, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, hash string, at time.Time) (bool, error) {
	for username, user := range f.users {
		if user.ID == id {
			user.PasswordHash = hash
			user.UpdatedAt = at
			f.users[username] = user
			return true, nil
		}
	}
	return false, nil
}

func TestLoginWithStoredAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, time.UTC, "", "")

	created, err := svc.CreateUser(context.Background(), "admin", "admin@barokah.id", "rahasia-123")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, created.Role)

	user, err := svc.Login(context.Background(), "admin", "rahasia-123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	_, err = svc.Login(context.Background(), "admin", "salah")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBootstrapFallback(t *testing.T) {
	svc := NewService(newFakeUserRepo(), time.UTC, "admin", "bootstrap-pass")

	user, err := svc.Login(context.Background(), "admin", "bootstrap-pass")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, user.Role)

	_, err = svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBootstrapDisabledWithoutPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo(), time.UTC, "admin", "")

	_, err := svc.Login(context.Background(), "admin", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStoredAccountShadowsBootstrap(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, time.UTC, "admin", "bootstrap-pass")

	_, err := svc.CreateUser(context.Background(), "admin", "", "account-pass")
	require.NoError(t, err)

	// once an account exists the bootstrap pair no longer works
	_, err = svc.Login(context.Background(), "admin", "bootstrap-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "admin", "account-pass")
	require.NoError(t, err)
}

func TestCreateUserDuplicate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, time.UTC, "", "")

	_, err := svc.CreateUser(context.Background(), "admin", "", "rahasia-123")
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), "admin", "", "rahasia-456")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdatePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, time.UTC, "", "")

	created, err := svc.CreateUser(context.Background(), "admin", "", "lama-123")
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword(context.Background(), created.ID, "baru-456"))

	_, err = svc.Login(context.Background(), "admin", "lama-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "admin", "baru-456")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdatePassword(context.Background(), "missing-id", "x"), ErrNotFound)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("rahasia-123")
	require.NoError(t, err)
	require.NoError(t, auth.ComparePassword(hash, "rahasia-123"))
	assert.Error(t, auth.ComparePassword(hash, "salah"))
}
