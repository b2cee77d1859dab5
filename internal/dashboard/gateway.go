package dashboard

import (
	"context"

	"github.com/jambidev/barokah/internal/bookings"
	"github.com/jambidev/barokah/internal/models"
	"github.com/jambidev/barokah/internal/printerbrands"
	"github.com/jambidev/barokah/internal/problemcats"
	"github.com/jambidev/barokah/internal/technicians"
)

// ServiceGateway adapts the entity services to the dashboard's read
// interface. The dashboard sees everything, active or not; active counts are
// derived in the stats.
type ServiceGateway struct {
	Bookings    *bookings.Service
	Technicians *technicians.Service
	Brands      *printerbrands.Service
	Categories  *problemcats.Service
}

func (g ServiceGateway) FetchBookings(ctx context.Context) ([]models.Booking, error) {
	return g.Bookings.ListAll(ctx)
}

func (g ServiceGateway) FetchTechnicians(ctx context.Context) ([]models.Technician, error) {
	return g.Technicians.ListAdmin(ctx)
}

func (g ServiceGateway) FetchPrinterBrands(ctx context.Context) ([]models.PrinterBrand, error) {
	return g.Brands.ListAdmin(ctx)
}

func (g ServiceGateway) FetchProblemCategories(ctx context.Context) ([]models.ProblemCategory, error) {
	return g.Categories.ListAdmin(ctx)
}
