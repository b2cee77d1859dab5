package printerbrands

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
	ErrNotFound  = errors.New("printer brand not found")
	ErrDuplicate = errors.New("printer brand already exists")
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

func (s *Service) Create(ctx context.Context, req UpsertRequest) (models.PrinterBrand, error) {
	now := time.Now().In(s.location)
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	item := models.PrinterBrand{
		ID:        primitive.NewObjectID().Hex(),
		Name:      strings.TrimSpace(req.Name),
		Models:    []models.PrinterModel{},
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.PrinterBrand{}, ErrDuplicate
		}
		return models.PrinterBrand{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (models.PrinterBrand, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	set := bson.M{
		"name":      strings.TrimSpace(req.Name),
		"is_active": isActive,
		"updatedAt": time.Now().In(s.location),
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PrinterBrand{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return models.PrinterBrand{}, ErrDuplicate
		}
		return models.PrinterBrand{}, err
	}
	return updated, nil
}

// AddModel appends a model to a brand's ordered model list. Model ids are
// slugs of the model name, unique within the brand.
func (s *Service) AddModel(ctx context.Context, brandID string, req ModelRequest) (models.PrinterBrand, error) {
	model := models.PrinterModel{
		ID:   utils.Slugify(req.Name),
		Name: strings.TrimSpace(req.Name),
		Type: req.Type,
	}

	updated, err := s.repo.PushModel(ctx, strings.TrimSpace(brandID), model, time.Now().In(s.location))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PrinterBrand{}, ErrNotFound
		}
		return models.PrinterBrand{}, err
	}
	return updated, nil
}

func (s *Service) ListActive(ctx context.Context) ([]models.PrinterBrand, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListAdmin(ctx context.Context) ([]models.PrinterBrand, error) {
	return s.repo.ListAdmin(ctx)
}
