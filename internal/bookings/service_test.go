package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jambidev/barokah/internal/models"
)

type fakeRepo struct {
	bookings  map[string]models.Booking
	timelines map[string][]models.TimelineEntry
	// fail the first N inserts with a duplicate key error
	duplicateInserts int
	insertCalls      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings:  map[string]models.Booking{},
		timelines: map[string][]models.TimelineEntry{},
	}
}

// duplicateKeyErr mimics the server error shape mongo.IsDuplicateKeyError
// recognizes.
var duplicateKeyErr = mongo.WriteException{
	WriteErrors: mongo.WriteErrors{{Code: 11000}},
}

func (f *fakeRepo) Insert(ctx context.Context, booking models.Booking, timeline []models.TimelineEntry) error {
	f.insertCalls++
	if f.insertCalls <= f.duplicateInserts {
		return duplicateKeyErr
	}
	if _, exists := f.bookings[booking.ID]; exists {
		return duplicateKeyErr
	}
	f.bookings[booking.ID] = booking
	f.timelines[booking.ID] = timeline
	return nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	items := make([]models.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		items = append(items, b)
	}
	return items, nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return models.Booking{}, mongo.ErrNoDocuments
	}
	return b, nil
}

func (f *fakeRepo) FindByCodePhone(ctx context.Context, code, phone string) (models.Booking, error) {
	b, ok := f.bookings[code]
	if !ok || b.Customer.Phone != phone {
		return models.Booking{}, mongo.ErrNoDocuments
	}
	return b, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) (bool, error) {
	b, ok := f.bookings[id]
	if !ok {
		return false, nil
	}
	b.Status = status
	b.UpdatedAt = at
	f.bookings[id] = b
	return true, nil
}

func (f *fakeRepo) CompleteTimelineStep(ctx context.Context, bookingID, status string, at time.Time) error {
	entries := f.timelines[bookingID]
	for i, e := range entries {
		if e.Status == status {
			entries[i].Completed = true
			entries[i].CompletedAt = at
		}
	}
	return nil
}

func (f *fakeRepo) AssignTechnician(ctx context.Context, id, technicianID string, at time.Time) (bool, error) {
	b, ok := f.bookings[id]
	if !ok {
		return false, nil
	}
	b.TechnicianID = technicianID
	b.UpdatedAt = at
	f.bookings[id] = b
	return true, nil
}

func (f *fakeRepo) UpdateActualCost(ctx context.Context, id, actualCost string, at time.Time) (bool, error) {
	b, ok := f.bookings[id]
	if !ok {
		return false, nil
	}
	b.ActualCost = actualCost
	b.UpdatedAt = at
	f.bookings[id] = b
	return true, nil
}

func (f *fakeRepo) Timeline(ctx context.Context, bookingID string) ([]models.TimelineEntry, error) {
	return f.timelines[bookingID], nil
}

func jakartaLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func validCreateRequest(loc *time.Location) CreateRequest {
	// next Monday, always in the future and inside workshop hours
	date := time.Now().In(loc).AddDate(0, 0, 7)
	for date.Weekday() != time.Monday {
		date = date.AddDate(0, 0, 1)
	}
	return CreateRequest{
		CustomerName:       "Ahmad Wijaya",
		CustomerPhone:      "081234567890",
		PrinterBrand:       "Canon",
		PrinterModel:       "PIXMA G2010",
		ProblemCategory:    "Masalah Pencetakan",
		ProblemDescription: "hasil cetak bergaris",
		ServiceType:        "dropoff",
		ServiceDate:        date.Format("2006-01-02"),
		ServiceTime:        "09:00",
		EstimatedCost:      "Rp 50.000 - 150.000",
	}
}

func TestCreateBookingSeedsTimeline(t *testing.T) {
	loc := jakartaLocation(t)
	repo := newFakeRepo()
	svc := NewService(repo, loc)

	booking, err := svc.Create(context.Background(), validCreateRequest(loc))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(booking.ID, "BK") {
		t.Fatalf("code %q does not start with BK", booking.ID)
	}
	if len(booking.ID) != len("BK060102-0000") {
		t.Fatalf("unexpected code shape %q", booking.ID)
	}
	if booking.Status != models.BookingStatusPending {
		t.Fatalf("status = %q, want pending", booking.Status)
	}

	entries := repo.timelines[booking.ID]
	if len(entries) != 4 {
		t.Fatalf("timeline entries = %d, want 4", len(entries))
	}
	if !entries[0].Completed || entries[0].Status != models.BookingStatusPending {
		t.Fatalf("first step should be completed pending, got %+v", entries[0])
	}
	for _, e := range entries[1:] {
		if e.Completed {
			t.Fatalf("step %s should not be completed yet", e.Status)
		}
	}
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	loc := jakartaLocation(t)
	svc := NewService(newFakeRepo(), loc)

	req := validCreateRequest(loc)
	req.ServiceDate = time.Now().In(loc).AddDate(0, 0, -1).Format("2006-01-02")

	if _, err := svc.Create(context.Background(), req); err != ErrDatePast {
		t.Fatalf("err = %v, want ErrDatePast", err)
	}
}

func TestCreateBookingRejectsClosedSlot(t *testing.T) {
	loc := jakartaLocation(t)
	svc := NewService(newFakeRepo(), loc)

	req := validCreateRequest(loc)
	req.ServiceTime = "12:00" // midday break on weekdays

	if _, err := svc.Create(context.Background(), req); err != ErrSlotClosed {
		t.Fatalf("err = %v, want ErrSlotClosed", err)
	}
}

func TestCreateBookingRetriesOnCodeCollision(t *testing.T) {
	loc := jakartaLocation(t)
	repo := newFakeRepo()
	repo.duplicateInserts = 2
	svc := NewService(repo, loc)

	booking, err := svc.Create(context.Background(), validCreateRequest(loc))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.insertCalls != 3 {
		t.Fatalf("insert calls = %d, want 3", repo.insertCalls)
	}
	if booking.ID == "" {
		t.Fatal("expected a booking code after retries")
	}
}

func TestCreateBookingGivesUpAfterThreeCollisions(t *testing.T) {
	loc := jakartaLocation(t)
	repo := newFakeRepo()
	repo.duplicateInserts = 3
	svc := NewService(repo, loc)

	if _, err := svc.Create(context.Background(), validCreateRequest(loc)); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
}

func TestUpdateStatusCompletesTimelineStep(t *testing.T) {
	loc := jakartaLocation(t)
	repo := newFakeRepo()
	svc := NewService(repo, loc)

	booking, err := svc.Create(context.Background(), validCreateRequest(loc))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), booking.ID, models.BookingStatusConfirmed); err != nil {
		t.Fatalf("update status: %v", err)
	}

	if got := repo.bookings[booking.ID].Status; got != models.BookingStatusConfirmed {
		t.Fatalf("status = %q, want confirmed", got)
	}
	var confirmed *models.TimelineEntry
	for i := range repo.timelines[booking.ID] {
		if repo.timelines[booking.ID][i].Status == models.BookingStatusConfirmed {
			confirmed = &repo.timelines[booking.ID][i]
		}
	}
	if confirmed == nil || !confirmed.Completed {
		t.Fatal("confirmed timeline step should be completed")
	}
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	loc := jakartaLocation(t)
	svc := NewService(newFakeRepo(), loc)

	if err := svc.UpdateStatus(context.Background(), "BK000000-0000", models.BookingStatusConfirmed); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLookupMatchesCodeAndPhone(t *testing.T) {
	loc := jakartaLocation(t)
	repo := newFakeRepo()
	svc := NewService(repo, loc)

	booking, err := svc.Create(context.Background(), validCreateRequest(loc))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := svc.Lookup(context.Background(), LookupRequest{Code: booking.ID, Phone: "081234567890"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if found.ID != booking.ID {
		t.Fatalf("lookup returned %q, want %q", found.ID, booking.ID)
	}

	if _, err := svc.Lookup(context.Background(), LookupRequest{Code: booking.ID, Phone: "089999999999"}); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound for wrong phone", err)
	}
}

func TestListPaginatesFilteredResults(t *testing.T) {
	loc := jakartaLocation(t)
	repo := newFakeRepo()
	svc := NewService(repo, loc)

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), validCreateRequest(loc)); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	items, total, err := svc.List(context.Background(), ListFilter{}, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(items) != 2 {
		t.Fatalf("page size = %d, want 2", len(items))
	}

	items, _, err = svc.List(context.Background(), ListFilter{}, 2, 4)
	if err != nil {
		t.Fatalf("list offset: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("last page size = %d, want 1", len(items))
	}

	items, total, err = svc.List(context.Background(), ListFilter{Status: models.BookingStatusCompleted}, 10, 0)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Fatalf("expected no completed bookings, got %d", total)
	}
}
