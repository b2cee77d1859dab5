package bookings

import (
	"testing"

	"github.com/jambidev/barokah/internal/models"
)

func sampleBookings() []models.Booking {
	return []models.Booking{
		{
			ID:       "BK001",
			Status:   models.BookingStatusPending,
			Customer: models.Customer{Name: "Ahmad Wijaya", Phone: "081234567890"},
		},
		{
			ID:       "BK002",
			Status:   models.BookingStatusCompleted,
			Customer: models.Customer{Name: "Siti Nurhaliza", Phone: "085611112222"},
		},
	}
}

func TestFilterByNameCaseInsensitive(t *testing.T) {
	got := Filter(sampleBookings(), "ahmad", StatusAll)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].ID != "BK001" {
		t.Fatalf("expected BK001, got %s", got[0].ID)
	}
}

func TestFilterByStatusOnly(t *testing.T) {
	got := Filter(sampleBookings(), "", models.BookingStatusCompleted)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].ID != "BK002" {
		t.Fatalf("expected BK002, got %s", got[0].ID)
	}
}

func TestFilterByID(t *testing.T) {
	got := Filter(sampleBookings(), "bk002", "")
	if len(got) != 1 || got[0].ID != "BK002" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFilterByPhone(t *testing.T) {
	got := Filter(sampleBookings(), "0812", "")
	if len(got) != 1 || got[0].ID != "BK001" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFilterPredicatesAreANDed(t *testing.T) {
	// query matches BK001 but status filter excludes it
	got := Filter(sampleBookings(), "ahmad", models.BookingStatusCompleted)
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	got := Filter(sampleBookings(), "", "")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	got = Filter(sampleBookings(), "  ", StatusAll)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches with blank query, got %d", len(got))
	}
}
