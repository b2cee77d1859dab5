package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jambidev/barokah/internal/bookings"
	"github.com/jambidev/barokah/internal/metrics"
	"github.com/jambidev/barokah/internal/models"
	"github.com/jambidev/barokah/internal/notify"
)

// NewBookingWindow is the trailing window inside which a freshly observed
// booking still counts as "new" and triggers a notification.
const NewBookingWindow = 5 * time.Minute

var ErrFetch = errors.New("dashboard refresh failed")

// Gateway is the read side of the remote data store as the dashboard needs
// it. It is injected so tests can substitute a fake.
type Gateway interface {
	FetchBookings(ctx context.Context) ([]models.Booking, error)
	FetchTechnicians(ctx context.Context) ([]models.Technician, error)
	FetchPrinterBrands(ctx context.Context) ([]models.PrinterBrand, error)
	FetchProblemCategories(ctx context.Context) ([]models.ProblemCategory, error)
}

// BookingMutator covers the booking mutations the dashboard mediates.
type BookingMutator interface {
	UpdateStatus(ctx context.Context, id, status string) error
	AssignTechnician(ctx context.Context, id, technicianID string) error
	UpdateActualCost(ctx context.Context, id, actualCost string) error
}

// Messenger fires the outbound WhatsApp side effect for a new booking and
// returns the compose link. Fire-and-forget: no delivery feedback exists.
type Messenger interface {
	NotifyNewBooking(booking models.Booking) string
}

// Snapshot is one consistent view of all four collections. The four lists are
// always replaced together; a reader never observes a partial refresh.
type Snapshot struct {
	Bookings    []models.Booking         `json:"bookings"`
	Technicians []models.Technician      `json:"technicians"`
	Brands      []models.PrinterBrand    `json:"brands"`
	Categories  []models.ProblemCategory `json:"categories"`
	LoadedAt    time.Time                `json:"loadedAt"`
}

// Controller owns the in-memory snapshot of the admin dashboard, refreshes it
// from the gateway and mediates every booking mutation, reconciling through a
// full reload afterwards. No optimistic updates, no automatic retries.
type Controller struct {
	gateway   Gateway
	mutator   BookingMutator
	notifier  *notify.Notifier
	messenger Messenger
	log       *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	snapshot Snapshot
	stats    Stats
	loaded   bool
	// highWater is the newest booking creation time seen by the previous
	// refresh; only bookings beyond it can notify.
	highWater time.Time
	issued    uint64
	applied   uint64
}

func NewController(gateway Gateway, mutator BookingMutator, notifier *notify.Notifier, messenger Messenger, log *slog.Logger) *Controller {
	return &Controller{
		gateway:   gateway,
		mutator:   mutator,
		notifier:  notifier,
		messenger: messenger,
		log:       log,
		now:       time.Now,
	}
}

// LoadAll fetches the four collections concurrently and swaps the snapshot
// atomically. On any fetch failure the prior snapshot and stats are retained
// and a single error notification is emitted. A sequence number guards against
// a slow stale fetch overwriting the result of a later one.
func (c *Controller) LoadAll(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	var (
		bookingList    []models.Booking
		technicianList []models.Technician
		brandList      []models.PrinterBrand
		categoryList   []models.ProblemCategory
	)
	errs := make([]error, 4)

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		bookingList, errs[0] = c.gateway.FetchBookings(ctx)
	}()
	go func() {
		defer wg.Done()
		technicianList, errs[1] = c.gateway.FetchTechnicians(ctx)
	}()
	go func() {
		defer wg.Done()
		brandList, errs[2] = c.gateway.FetchPrinterBrands(ctx)
	}()
	go func() {
		defer wg.Done()
		categoryList, errs[3] = c.gateway.FetchProblemCategories(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			c.mu.Lock()
			stale := seq < c.applied
			c.mu.Unlock()
			if stale {
				// a later-issued load already landed; the fresh data stands,
				// so this failure must not raise a toast over it
				metrics.IncRefresh("stale")
				return nil
			}
			metrics.IncRefresh("error")
			c.log.Error("dashboard refresh failed", slog.String("error", err.Error()))
			c.notifier.Error("Gagal memuat data dashboard")
			return fmt.Errorf("%w: %v", ErrFetch, err)
		}
	}

	now := c.now()

	c.mu.Lock()
	if seq < c.applied {
		// a later-issued load already landed; drop this stale result
		c.mu.Unlock()
		metrics.IncRefresh("stale")
		return nil
	}
	c.applied = seq

	firstLoad := !c.loaded
	prevMark := c.highWater

	c.snapshot = Snapshot{
		Bookings:    bookingList,
		Technicians: technicianList,
		Brands:      brandList,
		Categories:  categoryList,
		LoadedAt:    now,
	}
	c.stats = ComputeStats(bookingList, technicianList)
	c.loaded = true

	newMark := prevMark
	fresh := make([]models.Booking, 0)
	for _, b := range bookingList {
		if b.CreatedAt.After(newMark) {
			newMark = b.CreatedAt
		}
		if firstLoad {
			continue
		}
		if b.CreatedAt.After(prevMark) && now.Sub(b.CreatedAt) <= NewBookingWindow {
			fresh = append(fresh, b)
		}
	}
	c.highWater = newMark
	c.mu.Unlock()

	metrics.IncRefresh("ok")

	for _, b := range fresh {
		c.notifier.Info(fmt.Sprintf("Booking baru %s dari %s", b.ID, b.Customer.Name))
		if c.messenger != nil {
			c.messenger.NotifyNewBooking(b)
		}
	}
	return nil
}

// EnsureLoaded performs the initial load if no refresh has succeeded yet.
func (c *Controller) EnsureLoaded(ctx context.Context) error {
	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()
	if loaded {
		return nil
	}
	return c.LoadAll(ctx)
}

// Snapshot returns a copy of the current consistent view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.snapshot
	snap.Bookings = append([]models.Booking(nil), c.snapshot.Bookings...)
	snap.Technicians = append([]models.Technician(nil), c.snapshot.Technicians...)
	snap.Brands = append([]models.PrinterBrand(nil), c.snapshot.Brands...)
	snap.Categories = append([]models.ProblemCategory(nil), c.snapshot.Categories...)
	return snap
}

func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// FilterBookings applies the bookings-tab search over the current snapshot.
func (c *Controller) FilterBookings(query, status string) []models.Booking {
	c.mu.Lock()
	items := append([]models.Booking(nil), c.snapshot.Bookings...)
	c.mu.Unlock()
	return bookings.Filter(items, query, status)
}

// UpdateStatus mediates a status change: gateway write, then a full reload to
// reconcile. On failure the in-memory state is untouched and exactly one error
// notification is emitted.
func (c *Controller) UpdateStatus(ctx context.Context, id, status string) error {
	if err := c.mutator.UpdateStatus(ctx, id, status); err != nil {
		c.mutationFailed("Gagal mengubah status booking "+id, err)
		return err
	}
	c.notifier.Success(fmt.Sprintf("Status booking %s menjadi %s", id, status))
	c.reconcile(ctx)
	return nil
}

func (c *Controller) AssignTechnician(ctx context.Context, id, technicianID string) error {
	if err := c.mutator.AssignTechnician(ctx, id, technicianID); err != nil {
		c.mutationFailed("Gagal menugaskan teknisi untuk booking "+id, err)
		return err
	}
	c.notifier.Success("Teknisi ditugaskan untuk booking " + id)
	c.reconcile(ctx)
	return nil
}

func (c *Controller) UpdateActualCost(ctx context.Context, id, actualCost string) error {
	if err := c.mutator.UpdateActualCost(ctx, id, actualCost); err != nil {
		c.mutationFailed("Gagal memperbarui biaya booking "+id, err)
		return err
	}
	c.notifier.Success("Biaya booking " + id + " diperbarui")
	c.reconcile(ctx)
	return nil
}

// Reconcile re-derives the snapshot after an out-of-band mutation (entity
// CRUD handled outside the controller). Failures are already surfaced as
// notifications by LoadAll.
func (c *Controller) Reconcile(ctx context.Context) {
	c.reconcile(ctx)
}

func (c *Controller) reconcile(ctx context.Context) {
	if err := c.LoadAll(ctx); err != nil {
		// mutation itself succeeded; stale data with an error toast is the
		// documented outcome
		c.log.Warn("reconcile after mutation failed", slog.String("error", err.Error()))
	}
}

func (c *Controller) mutationFailed(message string, err error) {
	metrics.IncMutationFailure()
	c.log.Error("dashboard mutation failed", slog.String("error", err.Error()))
	c.notifier.Error(message)
}

// Notifications exposes the emitter's visible list.
func (c *Controller) Notifications() []notify.Notification {
	return c.notifier.List()
}

func (c *Controller) DismissNotification(id string) {
	c.notifier.Remove(id)
}

func (c *Controller) MarkNotificationRead(id string) bool {
	return c.notifier.MarkRead(id)
}
