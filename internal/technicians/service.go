package technicians

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jambidev/barokah/internal/models"
)

var ErrNotFound = errors.New("technician not found")

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

func (s *Service) Create(ctx context.Context, req UpsertRequest) (models.Technician, error) {
	now := time.Now().In(s.location)
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	item := models.Technician{
		ID:              primitive.NewObjectID().Hex(),
		Name:            strings.TrimSpace(req.Name),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		Specialization:  normalizeList(req.Specialization),
		ExperienceYears: req.ExperienceYears,
		Rating:          req.Rating,
		IsActive:        isActive,
		Schedule:        req.schedule(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return models.Technician{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (models.Technician, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	set := bson.M{
		"name":            strings.TrimSpace(req.Name),
		"phone":           strings.TrimSpace(req.Phone),
		"email":           strings.TrimSpace(req.Email),
		"specialization":  normalizeList(req.Specialization),
		"experienceYears": req.ExperienceYears,
		"rating":          req.Rating,
		"is_active":       isActive,
		"schedule":        req.schedule(),
		"updatedAt":       time.Now().In(s.location),
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Technician{}, ErrNotFound
		}
		return models.Technician{}, err
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

func (s *Service) ListActive(ctx context.Context) ([]models.Technician, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListAdmin(ctx context.Context) ([]models.Technician, error) {
	return s.repo.ListAdmin(ctx)
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
