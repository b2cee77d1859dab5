package bookings

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jambidev/barokah/internal/models"
	"github.com/jambidev/barokah/internal/schedule"
)

var (
	ErrNotFound   = errors.New("booking not found")
	ErrDatePast   = errors.New("service date in the past")
	ErrSlotClosed = errors.New("service time outside workshop hours")
	ErrSlotPassed = errors.New("service slot already passed")
)

// timelineSteps is the fixed progress ladder seeded for every new booking.
// Cancellation is a terminal status change, not a timeline step.
var timelineSteps = []struct {
	Status string
	Label  string
}{
	{models.BookingStatusPending, "Booking received"},
	{models.BookingStatusConfirmed, "Booking confirmed"},
	{models.BookingStatusInProgress, "Repair in progress"},
	{models.BookingStatusCompleted, "Repair completed"},
}

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

func (s *Service) Create(ctx context.Context, req CreateRequest) (models.Booking, error) {
	now := time.Now().In(s.location)

	past, err := schedule.IsDatePast(req.ServiceDate, s.location, now)
	if err != nil {
		return models.Booking{}, err
	}
	if past {
		return models.Booking{}, ErrDatePast
	}

	allowed, err := schedule.IsSlotAllowed(req.ServiceDate, req.ServiceTime, s.location)
	if err != nil {
		return models.Booking{}, err
	}
	if !allowed {
		return models.Booking{}, ErrSlotClosed
	}

	if req.ServiceDate == now.Format("2006-01-02") {
		passed, err := schedule.IsSlotPast(req.ServiceDate, req.ServiceTime, s.location, now)
		if err != nil {
			return models.Booking{}, err
		}
		if passed {
			return models.Booking{}, ErrSlotPassed
		}
	}

	booking := models.Booking{
		Status: models.BookingStatusPending,
		Customer: models.Customer{
			Name:  strings.TrimSpace(req.CustomerName),
			Phone: strings.TrimSpace(req.CustomerPhone),
		},
		Printer: models.BookingPrinter{
			Brand: strings.TrimSpace(req.PrinterBrand),
			Model: strings.TrimSpace(req.PrinterModel),
		},
		Problem: models.BookingProblem{
			Category:    strings.TrimSpace(req.ProblemCategory),
			Description: strings.TrimSpace(req.ProblemDescription),
		},
		Service: models.BookingService{
			Type: req.ServiceType,
			Date: req.ServiceDate,
			Time: req.ServiceTime,
		},
		EstimatedCost: strings.TrimSpace(req.EstimatedCost),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// booking codes are short and random, so retry a few times on collision
	for attempt := 0; attempt < 3; attempt++ {
		booking.ID = newBookingCode(now)
		err = s.repo.Insert(ctx, booking, seedTimeline(booking.ID, now))
		if err == nil {
			return booking, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return models.Booking{}, err
		}
	}
	return models.Booking{}, err
}

func (s *Service) ListAll(ctx context.Context) ([]models.Booking, error) {
	return s.repo.ListAll(ctx)
}

// List applies the dashboard search predicate in memory over the full
// collection. The dataset is tens to low hundreds of rows, so no server-side
// pagination of the filter is needed; limit/offset slice the filtered result.
func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int64) ([]models.Booking, int64, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := Filter(all, filter.Query, filter.Status)
	total := int64(len(matched))

	if offset >= total {
		return []models.Booking{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Booking, error) {
	booking, err := s.repo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Booking{}, ErrNotFound
		}
		return models.Booking{}, err
	}
	return booking, nil
}

func (s *Service) Lookup(ctx context.Context, req LookupRequest) (models.Booking, error) {
	booking, err := s.repo.FindByCodePhone(ctx, strings.TrimSpace(req.Code), strings.TrimSpace(req.Phone))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Booking{}, ErrNotFound
		}
		return models.Booking{}, err
	}
	return booking, nil
}

// UpdateStatus flips the booking status and marks the matching timeline step
// completed, mirroring the dashboard's two-write update.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	now := time.Now().In(s.location)
	matched, err := s.repo.UpdateStatus(ctx, strings.TrimSpace(id), status, now)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	return s.repo.CompleteTimelineStep(ctx, strings.TrimSpace(id), status, now)
}

func (s *Service) AssignTechnician(ctx context.Context, id, technicianID string) error {
	matched, err := s.repo.AssignTechnician(ctx, strings.TrimSpace(id), strings.TrimSpace(technicianID), time.Now().In(s.location))
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}

func (s *Service) UpdateActualCost(ctx context.Context, id, actualCost string) error {
	matched, err := s.repo.UpdateActualCost(ctx, strings.TrimSpace(id), strings.TrimSpace(actualCost), time.Now().In(s.location))
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Timeline(ctx context.Context, bookingID string) ([]models.TimelineEntry, error) {
	return s.repo.Timeline(ctx, strings.TrimSpace(bookingID))
}

func seedTimeline(bookingID string, now time.Time) []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(timelineSteps))
	for i, step := range timelineSteps {
		entry := models.TimelineEntry{
			ID:        primitive.NewObjectID().Hex(),
			BookingID: bookingID,
			Status:    step.Status,
			Label:     step.Label,
			// stagger createdAt so the ladder sorts stably
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		}
		if step.Status == models.BookingStatusPending {
			entry.Completed = true
			entry.CompletedAt = now
		}
		entries = append(entries, entry)
	}
	return entries
}

func newBookingCode(now time.Time) string {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("BK%s-%04d", now.Format("060102"), now.UnixNano()%10000)
	}
	n := binary.BigEndian.Uint16(buf) % 10000
	return fmt.Sprintf("BK%s-%04d", now.Format("060102"), n)
}
