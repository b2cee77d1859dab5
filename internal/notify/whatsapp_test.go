package notify

import (
	"log/slog"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jambidev/barokah/internal/models"
)

func testBooking() models.Booking {
	return models.Booking{
		ID:     "BK260204-0001",
		Status: models.BookingStatusPending,
		Customer: models.Customer{
			Name:  "Ahmad Wijaya",
			Phone: "081234567890",
		},
		Printer:       models.BookingPrinter{Brand: "Canon", Model: "PIXMA G2010"},
		Service:       models.BookingService{Type: models.ServiceTypeDropoff, Date: "2026-02-04", Time: "10:00"},
		EstimatedCost: "Rp 150.000",
	}
}

func TestComposeLink(t *testing.T) {
	c := NewWhatsAppClient("+62 812-0000-1111", slog.Default())
	require.NotNil(t, c)

	link := c.ComposeLink(testBooking())
	require.True(t, strings.HasPrefix(link, "https://wa.me/6281200001111?"), link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	text := u.Query().Get("text")
	assert.Contains(t, text, "BK260204-0001")
	assert.Contains(t, text, "Ahmad Wijaya")
	assert.Contains(t, text, "081234567890")
	assert.Contains(t, text, "Canon PIXMA G2010")
	assert.Contains(t, text, "2026-02-04 10:00")
	assert.Contains(t, text, "Rp 150.000")
}

func TestNewWhatsAppClientDisabled(t *testing.T) {
	assert.Nil(t, NewWhatsAppClient("", slog.Default()))
	assert.Nil(t, NewWhatsAppClient("  +  ", slog.Default()))

	// calling through a nil client must be safe
	var c *WhatsAppClient
	assert.Equal(t, "", c.NotifyNewBooking(testBooking()))
}
