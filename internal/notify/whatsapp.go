package notify

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jambidev/barokah/internal/models"
)

const waComposeBase = "https://wa.me/"

// WhatsAppClient builds web-compose deep links that pre-fill a new-booking
// message for the shop's WhatsApp number. Sending is one-way: the link is
// surfaced to the admin frontend and logged, no delivery feedback exists.
type WhatsAppClient struct {
	phone string
	log   *slog.Logger
}

// NewWhatsAppClient returns nil when no phone number is configured, which
// disables the side effect entirely.
func NewWhatsAppClient(phone string, log *slog.Logger) *WhatsAppClient {
	phone = normalizePhone(phone)
	if phone == "" {
		return nil
	}
	return &WhatsAppClient{phone: phone, log: log}
}

// NotifyNewBooking composes the deep link for a freshly detected booking and
// returns it. Fire-and-forget: failures only ever surface in the log.
func (c *WhatsAppClient) NotifyNewBooking(booking models.Booking) string {
	if c == nil {
		return ""
	}
	link := c.ComposeLink(booking)
	c.log.Info("whatsapp notification link",
		slog.String("booking_id", booking.ID),
		slog.String("link", link),
	)
	return link
}

func (c *WhatsAppClient) ComposeLink(booking models.Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Booking servis baru %s\n", booking.ID)
	fmt.Fprintf(&b, "Nama: %s\n", booking.Customer.Name)
	fmt.Fprintf(&b, "Telepon: %s\n", booking.Customer.Phone)
	fmt.Fprintf(&b, "Printer: %s %s\n", booking.Printer.Brand, booking.Printer.Model)
	fmt.Fprintf(&b, "Jadwal: %s %s\n", booking.Service.Date, booking.Service.Time)
	if booking.EstimatedCost != "" {
		fmt.Fprintf(&b, "Estimasi biaya: %s\n", booking.EstimatedCost)
	}

	query := url.Values{}
	query.Set("text", b.String())
	return waComposeBase + c.phone + "?" + query.Encode()
}

// normalizePhone strips the leading plus and separators; wa.me links expect
// bare digits with country code.
func normalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(phone) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}
