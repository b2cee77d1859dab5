package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jambidev/barokah/internal/models"
	"github.com/jambidev/barokah/internal/notify"
)

type fakeGateway struct {
	mu          sync.Mutex
	bookings    []models.Booking
	technicians []models.Technician
	brands      []models.PrinterBrand
	categories  []models.ProblemCategory
	bookingsErr error
	// when set, FetchBookings blocks until released; used to race two loads
	hold chan struct{}
}

func (g *fakeGateway) FetchBookings(ctx context.Context) ([]models.Booking, error) {
	g.mu.Lock()
	hold := g.hold
	items := append([]models.Booking(nil), g.bookings...)
	err := g.bookingsErr
	g.mu.Unlock()
	if hold != nil {
		<-hold
	}
	return items, err
}

func (g *fakeGateway) FetchTechnicians(ctx context.Context) ([]models.Technician, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Technician(nil), g.technicians...), nil
}

func (g *fakeGateway) FetchPrinterBrands(ctx context.Context) ([]models.PrinterBrand, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.PrinterBrand(nil), g.brands...), nil
}

func (g *fakeGateway) FetchProblemCategories(ctx context.Context) ([]models.ProblemCategory, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.ProblemCategory(nil), g.categories...), nil
}

func (g *fakeGateway) setBookings(items []models.Booking) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.bookings = items
}

type fakeMutator struct {
	err    error
	calls  []string
	status string
}

func (m *fakeMutator) UpdateStatus(ctx context.Context, id, status string) error {
	m.calls = append(m.calls, "status:"+id)
	m.status = status
	return m.err
}

func (m *fakeMutator) AssignTechnician(ctx context.Context, id, technicianID string) error {
	m.calls = append(m.calls, "assign:"+id)
	return m.err
}

func (m *fakeMutator) UpdateActualCost(ctx context.Context, id, actualCost string) error {
	m.calls = append(m.calls, "cost:"+id)
	return m.err
}

type fakeMessenger struct {
	mu    sync.Mutex
	sent  []string
	links []string
}

func (m *fakeMessenger) NotifyNewBooking(b models.Booking) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, b.ID)
	link := "https://wa.me/628110001111?text=" + b.ID
	m.links = append(m.links, link)
	return link
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func booking(id string, status string, createdAt time.Time) models.Booking {
	return models.Booking{
		ID:     id,
		Status: status,
		Customer: models.Customer{
			Name:  "Ahmad Wijaya",
			Phone: "081234567890",
		},
		CreatedAt: createdAt,
	}
}

func newTestController(gw Gateway, mut BookingMutator, msg Messenger) (*Controller, *notify.Notifier) {
	notifier := notify.New(notify.DefaultCap, time.Minute)
	c := NewController(gw, mut, notifier, msg, testLogger())
	return c, notifier
}

func TestLoadAllSwapsSnapshotAtomically(t *testing.T) {
	now := time.Now()
	gw := &fakeGateway{
		bookings: []models.Booking{
			booking("BK260810-1001", models.BookingStatusPending, now.Add(-2*time.Hour)),
			booking("BK260810-1002", models.BookingStatusCompleted, now.Add(-time.Hour)),
		},
		technicians: []models.Technician{
			{ID: "t1", Name: "Budi", IsActive: true},
			{ID: "t2", Name: "Sari", IsActive: false},
		},
		brands:     []models.PrinterBrand{{ID: "b1", Name: "Canon"}},
		categories: []models.ProblemCategory{{ID: "c1", Name: "Paper Jam", Icon: "printer"}},
	}
	c, _ := newTestController(gw, &fakeMutator{}, nil)

	require.NoError(t, c.LoadAll(context.Background()))

	snap := c.Snapshot()
	assert.Len(t, snap.Bookings, 2)
	assert.Len(t, snap.Technicians, 2)
	assert.Len(t, snap.Brands, 1)
	assert.Len(t, snap.Categories, 1)
	assert.False(t, snap.LoadedAt.IsZero())

	stats := c.Stats()
	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 1, stats.PendingBookings)
	assert.Equal(t, 1, stats.CompletedBookings)
	assert.Equal(t, 1, stats.ActiveTechnicians)
	assert.InDelta(t, 50.0, stats.CompletionRate, 0.001)
}

func TestLoadAllFailureKeepsPreviousSnapshot(t *testing.T) {
	now := time.Now()
	gw := &fakeGateway{
		bookings: []models.Booking{booking("BK260810-1001", models.BookingStatusPending, now)},
	}
	c, notifier := newTestController(gw, &fakeMutator{}, nil)
	require.NoError(t, c.LoadAll(context.Background()))

	gw.mu.Lock()
	gw.bookingsErr = errors.New("connection refused")
	gw.mu.Unlock()

	err := c.LoadAll(context.Background())
	require.ErrorIs(t, err, ErrFetch)

	// prior view intact, one error notification
	assert.Len(t, c.Snapshot().Bookings, 1)
	list := notifier.List()
	require.Len(t, list, 1)
	assert.Equal(t, notify.KindError, list[0].Kind)
}

func TestNewBookingDetectionExactlyOnce(t *testing.T) {
	now := time.Now()
	seed := []models.Booking{
		booking("BK260810-1001", models.BookingStatusPending, now.Add(-90*time.Second)),
		booking("BK260810-1002", models.BookingStatusPending, now.Add(-80*time.Second)),
		booking("BK260810-1003", models.BookingStatusPending, now.Add(-70*time.Second)),
	}
	gw := &fakeGateway{bookings: seed}
	msg := &fakeMessenger{}
	c, notifier := newTestController(gw, &fakeMutator{}, msg)

	// first load establishes the mark without notifying
	require.NoError(t, c.LoadAll(context.Background()))
	assert.Empty(t, notifier.List())
	assert.Empty(t, msg.sent)

	fresh := booking("BK260810-1004", models.BookingStatusPending, now.Add(-10*time.Second))
	gw.setBookings(append(append([]models.Booking(nil), seed...), fresh))

	require.NoError(t, c.LoadAll(context.Background()))
	list := notifier.List()
	require.Len(t, list, 1)
	assert.Equal(t, notify.KindInfo, list[0].Kind)
	assert.Contains(t, list[0].Message, "BK260810-1004")
	require.Len(t, msg.sent, 1)
	assert.Equal(t, "BK260810-1004", msg.sent[0])

	// same data again: no repeat notification
	require.NoError(t, c.LoadAll(context.Background()))
	assert.Len(t, notifier.List(), 1)
	assert.Len(t, msg.sent, 1)
}

func TestNewBookingOutsideWindowAdvancesMarkSilently(t *testing.T) {
	now := time.Now()
	seed := []models.Booking{booking("BK260810-1001", models.BookingStatusPending, now.Add(-time.Hour))}
	gw := &fakeGateway{bookings: seed}
	msg := &fakeMessenger{}
	c, notifier := newTestController(gw, &fakeMutator{}, msg)
	require.NoError(t, c.LoadAll(context.Background()))

	// newer than the mark but older than the trailing window: no notification
	stale := booking("BK260810-1002", models.BookingStatusPending, now.Add(-30*time.Minute))
	gw.setBookings(append(append([]models.Booking(nil), seed...), stale))
	require.NoError(t, c.LoadAll(context.Background()))
	assert.Empty(t, notifier.List())
	assert.Empty(t, msg.sent)

	// and the mark advanced: re-observing it stays silent too
	require.NoError(t, c.LoadAll(context.Background()))
	assert.Empty(t, notifier.List())
}

func TestStaleLoadDoesNotOverwriteNewerOne(t *testing.T) {
	now := time.Now()
	hold := make(chan struct{})
	gw := &fakeGateway{
		bookings: []models.Booking{booking("BK260810-1001", models.BookingStatusPending, now.Add(-time.Hour))},
		hold:     hold,
	}
	c, _ := newTestController(gw, &fakeMutator{}, nil)

	// first load stalls inside the fetch
	done := make(chan error, 1)
	go func() { done <- c.LoadAll(context.Background()) }()
	time.Sleep(20 * time.Millisecond)

	// second load starts later, sees two bookings, finishes first
	gw.mu.Lock()
	gw.hold = nil
	gw.bookings = append(gw.bookings, booking("BK260810-1002", models.BookingStatusPending, now.Add(-30*time.Minute)))
	gw.mu.Unlock()
	require.NoError(t, c.LoadAll(context.Background()))
	require.Len(t, c.Snapshot().Bookings, 2)

	// release the stalled load; its single-booking result must be dropped
	close(hold)
	require.NoError(t, <-done)
	assert.Len(t, c.Snapshot().Bookings, 2)
}

func TestStaleFailedLoadEmitsNoErrorToast(t *testing.T) {
	now := time.Now()
	hold := make(chan struct{})
	gw := &fakeGateway{
		bookings:    []models.Booking{booking("BK260810-1001", models.BookingStatusPending, now.Add(-time.Hour))},
		bookingsErr: errors.New("connection reset"),
		hold:        hold,
	}
	c, notifier := newTestController(gw, &fakeMutator{}, nil)

	// first load stalls inside the fetch and is doomed to fail
	done := make(chan error, 1)
	go func() { done <- c.LoadAll(context.Background()) }()
	time.Sleep(20 * time.Millisecond)

	// second load starts later, succeeds, and lands first
	gw.mu.Lock()
	gw.hold = nil
	gw.bookingsErr = nil
	gw.mu.Unlock()
	require.NoError(t, c.LoadAll(context.Background()))
	require.Len(t, c.Snapshot().Bookings, 1)

	// the stale failure must not raise a toast over the fresh data
	close(hold)
	require.NoError(t, <-done)
	assert.Empty(t, notifier.List())
	assert.Len(t, c.Snapshot().Bookings, 1)
}

func TestUpdateStatusSuccessNotifiesAndReconciles(t *testing.T) {
	now := time.Now()
	gw := &fakeGateway{
		bookings: []models.Booking{booking("BK260810-1001", models.BookingStatusPending, now.Add(-time.Hour))},
	}
	mut := &fakeMutator{}
	c, notifier := newTestController(gw, mut, nil)
	require.NoError(t, c.LoadAll(context.Background()))

	require.NoError(t, c.UpdateStatus(context.Background(), "BK260810-1001", models.BookingStatusConfirmed))

	assert.Equal(t, []string{"status:BK260810-1001"}, mut.calls)
	assert.Equal(t, models.BookingStatusConfirmed, mut.status)

	list := notifier.List()
	require.Len(t, list, 1)
	assert.Equal(t, notify.KindSuccess, list[0].Kind)
	assert.Contains(t, list[0].Message, "BK260810-1001")
}

func TestFailedMutationLeavesStateAndEmitsOneError(t *testing.T) {
	now := time.Now()
	gw := &fakeGateway{
		bookings: []models.Booking{booking("BK260810-1001", models.BookingStatusPending, now.Add(-time.Hour))},
	}
	mut := &fakeMutator{err: errors.New("write conflict")}
	c, notifier := newTestController(gw, mut, nil)
	require.NoError(t, c.LoadAll(context.Background()))
	before := c.Snapshot()

	err := c.UpdateStatus(context.Background(), "BK260810-1001", models.BookingStatusConfirmed)
	require.Error(t, err)

	after := c.Snapshot()
	assert.Equal(t, before.Bookings, after.Bookings)
	assert.Equal(t, before.LoadedAt, after.LoadedAt)

	list := notifier.List()
	require.Len(t, list, 1)
	assert.Equal(t, notify.KindError, list[0].Kind)
}

func TestFilterBookingsUsesSnapshot(t *testing.T) {
	now := time.Now()
	b1 := booking("BK260810-1001", models.BookingStatusPending, now.Add(-2*time.Hour))
	b2 := booking("BK260810-1002", models.BookingStatusCompleted, now.Add(-time.Hour))
	b2.Customer.Name = "Siti Rahma"
	gw := &fakeGateway{bookings: []models.Booking{b1, b2}}
	c, _ := newTestController(gw, &fakeMutator{}, nil)
	require.NoError(t, c.LoadAll(context.Background()))

	matched := c.FilterBookings("siti", "")
	require.Len(t, matched, 1)
	assert.Equal(t, "BK260810-1002", matched[0].ID)

	matched = c.FilterBookings("", models.BookingStatusCompleted)
	require.Len(t, matched, 1)
	assert.Equal(t, "BK260810-1002", matched[0].ID)

	assert.Len(t, c.FilterBookings("", "all"), 2)
}

func TestComputeStatsRevenueAndZeroGuard(t *testing.T) {
	empty := ComputeStats(nil, nil)
	assert.Zero(t, empty.TotalBookings)
	assert.Zero(t, empty.CompletionRate)

	now := time.Now()
	done1 := booking("BK260810-1001", models.BookingStatusCompleted, now)
	done1.ActualCost = "Rp 150.000"
	done2 := booking("BK260810-1002", models.BookingStatusCompleted, now)
	done2.ActualCost = "200000"
	open := booking("BK260810-1003", models.BookingStatusPending, now)
	open.ActualCost = "Rp 999.999" // not completed, excluded

	stats := ComputeStats([]models.Booking{done1, done2, open}, nil)
	assert.Equal(t, int64(350000), stats.Revenue)
	assert.InDelta(t, 66.666, stats.CompletionRate, 0.01)
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	gw := &fakeGateway{}
	c, _ := newTestController(gw, &fakeMutator{}, nil)
	p := NewPoller(c, 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}
	assert.False(t, c.Snapshot().LoadedAt.IsZero())
}
