package dashboard

import (
	"github.com/jambidev/barokah/internal/models"
	"github.com/jambidev/barokah/internal/utils"
)

// Stats are the overview-tab aggregates, re-derived from every snapshot.
type Stats struct {
	TotalBookings      int     `json:"totalBookings"`
	PendingBookings    int     `json:"pendingBookings"`
	ConfirmedBookings  int     `json:"confirmedBookings"`
	InProgressBookings int     `json:"inProgressBookings"`
	CompletedBookings  int     `json:"completedBookings"`
	CancelledBookings  int     `json:"cancelledBookings"`
	ActiveTechnicians  int     `json:"activeTechnicians"`
	Revenue            int64   `json:"revenue"`
	CompletionRate     float64 `json:"completionRate"`
}

// ComputeStats aggregates the booking and technician lists. Revenue sums the
// parsed actual cost of completed bookings, in rupiah. CompletionRate is a
// percentage; zero bookings yields zero, not NaN.
func ComputeStats(bookingList []models.Booking, technicianList []models.Technician) Stats {
	var st Stats
	st.TotalBookings = len(bookingList)

	for _, b := range bookingList {
		switch b.Status {
		case models.BookingStatusPending:
			st.PendingBookings++
		case models.BookingStatusConfirmed:
			st.ConfirmedBookings++
		case models.BookingStatusInProgress:
			st.InProgressBookings++
		case models.BookingStatusCompleted:
			st.CompletedBookings++
			st.Revenue += utils.ParseRupiah(b.ActualCost)
		case models.BookingStatusCancelled:
			st.CancelledBookings++
		}
	}

	for _, t := range technicianList {
		if t.IsActive {
			st.ActiveTechnicians++
		}
	}

	if st.TotalBookings > 0 {
		st.CompletionRate = float64(st.CompletedBookings) / float64(st.TotalBookings) * 100
	}
	return st
}
