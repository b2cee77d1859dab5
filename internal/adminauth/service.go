package adminauth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jambidev/barokah/internal/auth"
	"github.com/jambidev/barokah/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicate          = errors.New("username or email already exists")
	ErrNotFound           = errors.New("user not found")
)

type Service struct {
	repo     Repository
	location *time.Location
	// bootstrap credentials from the environment; accepted only when the
	// username has no stored account
	bootstrapUser     string
	bootstrapPassword string
}

func NewService(repo Repository, location *time.Location, bootstrapUser, bootstrapPassword string) *Service {
	return &Service{
		repo:              repo,
		location:          location,
		bootstrapUser:     bootstrapUser,
		bootstrapPassword: bootstrapPassword,
	}
}

// Login verifies stored admin credentials with bcrypt, falling back to the
// environment bootstrap pair so a fresh deployment can log in before any
// account exists.
func (s *Service) Login(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		if auth.ComparePassword(user.PasswordHash, password) != nil {
			return models.User{}, ErrInvalidCredentials
		}
		return user, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, err
	}

	if s.bootstrapPassword == "" {
		return models.User{}, ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.bootstrapUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.bootstrapPassword)) == 1
	if !userOK || !passOK {
		return models.User{}, ErrInvalidCredentials
	}
	return models.User{Username: s.bootstrapUser, Role: models.UserRoleAdmin}, nil
}

func (s *Service) CreateUser(ctx context.Context, username, email, password string) (models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now().In(s.location)
	user := models.User{
		ID:           primitive.NewObjectID().Hex(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Service) UpdatePassword(ctx context.Context, id, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	matched, err := s.repo.UpdatePassword(ctx, id, hash, time.Now().In(s.location))
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}
