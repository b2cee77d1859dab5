package models

import "time"

const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusInProgress = "in-progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"

	ServiceTypeOnsite  = "onsite"
	ServiceTypePickup  = "pickup"
	ServiceTypeDropoff = "dropoff"

	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"

	UserRoleAdmin = "admin"
)

// BookingStatuses lists every valid booking status in lifecycle order.
var BookingStatuses = []string{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusInProgress,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

func ValidBookingStatus(status string) bool {
	for _, s := range BookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CategoryIcons is the closed set of icon identifiers a problem category may
// carry. The frontend resolves them to assets; the data layer only stores the name.
var CategoryIcons = []string{
	"monitor",
	"laptop",
	"printer",
	"wrench",
	"shield",
	"zap",
	"droplet",
	"wifi",
	"settings",
}

func ValidCategoryIcon(icon string) bool {
	for _, name := range CategoryIcons {
		if name == icon {
			return true
		}
	}
	return false
}

type Customer struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
}

type BookingPrinter struct {
	Brand string `bson:"brand" json:"brand"`
	Model string `bson:"model" json:"model"`
}

type BookingProblem struct {
	Category    string `bson:"category" json:"category"`
	Description string `bson:"description" json:"description"`
}

type BookingService struct {
	Type string `bson:"type" json:"type"`
	Date string `bson:"date" json:"date"`
	Time string `bson:"time" json:"time"`
}

type Booking struct {
	ID            string         `bson:"_id,omitempty" json:"id"`
	Status        string         `bson:"status" json:"status"`
	Customer      Customer       `bson:"customer" json:"customer"`
	Printer       BookingPrinter `bson:"printer" json:"printer"`
	Problem       BookingProblem `bson:"problem" json:"problem"`
	Service       BookingService `bson:"service" json:"service"`
	TechnicianID  string         `bson:"technicianId,omitempty" json:"technicianId,omitempty"`
	EstimatedCost string         `bson:"estimatedCost,omitempty" json:"estimatedCost,omitempty"`
	ActualCost    string         `bson:"actualCost,omitempty" json:"actualCost,omitempty"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`
}

type DaySchedule struct {
	Available bool   `bson:"available" json:"available"`
	Start     string `bson:"start,omitempty" json:"start,omitempty"`
	End       string `bson:"end,omitempty" json:"end,omitempty"`
}

type Technician struct {
	ID              string                 `bson:"_id,omitempty" json:"id"`
	Name            string                 `bson:"name" json:"name"`
	Phone           string                 `bson:"phone" json:"phone"`
	Email           string                 `bson:"email,omitempty" json:"email,omitempty"`
	Specialization  []string               `bson:"specialization" json:"specialization"`
	ExperienceYears int                    `bson:"experienceYears" json:"experienceYears"`
	Rating          float64                `bson:"rating" json:"rating"`
	IsActive        bool                   `bson:"is_active" json:"isActive"`
	Schedule        map[string]DaySchedule `bson:"schedule,omitempty" json:"schedule,omitempty"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt" json:"updatedAt"`
}

type PrinterModel struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Type string `bson:"type" json:"type"`
}

type PrinterBrand struct {
	ID        string         `bson:"_id,omitempty" json:"id"`
	Name      string         `bson:"name" json:"name"`
	Models    []PrinterModel `bson:"models" json:"models"`
	IsActive  bool           `bson:"is_active" json:"isActive"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}

type Problem struct {
	ID            string `bson:"id" json:"id"`
	Name          string `bson:"name" json:"name"`
	Description   string `bson:"description" json:"description"`
	Severity      string `bson:"severity" json:"severity"`
	EstimatedTime string `bson:"estimatedTime" json:"estimatedTime"`
	EstimatedCost string `bson:"estimatedCost" json:"estimatedCost"`
}

type ProblemCategory struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Icon      string    `bson:"icon" json:"icon"`
	Problems  []Problem `bson:"problems" json:"problems"`
	IsActive  bool      `bson:"is_active" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TimelineEntry records one step of a booking's progress in the
// booking_timeline side collection.
type TimelineEntry struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	BookingID   string    `bson:"bookingId" json:"bookingId"`
	Status      string    `bson:"status" json:"status"`
	Label       string    `bson:"label" json:"label"`
	Completed   bool      `bson:"completed" json:"completed"`
	CompletedAt time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
