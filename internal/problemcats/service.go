package problemcats

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jambidev/barokah/internal/models"
	"github.com/jambidev/barokah/internal/utils"
)

var (
	ErrNotFound  = errors.New("problem category not found")
	ErrDuplicate = errors.New("problem category already exists")
)

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		location: location,
	}
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (models.ProblemCategory, error) {
	now := time.Now().In(s.location)
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	item := models.ProblemCategory{
		ID:        primitive.NewObjectID().Hex(),
		Name:      strings.TrimSpace(req.Name),
		Icon:      req.Icon,
		Problems:  []models.Problem{},
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ProblemCategory{}, ErrDuplicate
		}
		return models.ProblemCategory{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (models.ProblemCategory, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	set := bson.M{
		"name":      strings.TrimSpace(req.Name),
		"icon":      req.Icon,
		"is_active": isActive,
		"updatedAt": time.Now().In(s.location),
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ProblemCategory{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return models.ProblemCategory{}, ErrDuplicate
		}
		return models.ProblemCategory{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) AddProblem(ctx context.Context, categoryID string, req ProblemRequest) (models.ProblemCategory, error) {
	problem := models.Problem{
		ID:            utils.Slugify(req.Name),
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		Severity:      req.Severity,
		EstimatedTime: strings.TrimSpace(req.EstimatedTime),
		EstimatedCost: strings.TrimSpace(req.EstimatedCost),
	}

	updated, err := s.repo.PushProblem(ctx, strings.TrimSpace(categoryID), problem, time.Now().In(s.location))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ProblemCategory{}, ErrNotFound
		}
		return models.ProblemCategory{}, err
	}
	return updated, nil
}

func (s *Service) ListActive(ctx context.Context) ([]models.ProblemCategory, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListAdmin(ctx context.Context) ([]models.ProblemCategory, error) {
	return s.repo.ListAdmin(ctx)
}
