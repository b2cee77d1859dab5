package bookings

import (
	"strings"

	"github.com/jambidev/barokah/internal/models"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// MatchesQuery reports whether a booking matches the free-text search: a
// case-insensitive substring over the booking id, customer name and customer
// phone. The empty query matches everything.
func MatchesQuery(b models.Booking, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.ID), query) ||
		strings.Contains(strings.ToLower(b.Customer.Name), query) ||
		strings.Contains(strings.ToLower(b.Customer.Phone), query)
}

// MatchesStatus reports whether a booking matches the status filter. "" and
// "all" match every status; anything else must equal the status exactly.
func MatchesStatus(b models.Booking, status string) bool {
	if status == "" || status == StatusAll {
		return true
	}
	return b.Status == status
}

// Filter applies both predicates, ANDed, preserving input order.
func Filter(items []models.Booking, query, status string) []models.Booking {
	matched := make([]models.Booking, 0, len(items))
	for _, b := range items {
		if MatchesQuery(b, query) && MatchesStatus(b, status) {
			matched = append(matched, b)
		}
	}
	return matched
}
