package bookings

type CreateRequest struct {
	CustomerName       string `json:"customerName" validate:"required"`
	CustomerPhone      string `json:"customerPhone" validate:"required,phone"`
	PrinterBrand       string `json:"printerBrand" validate:"required"`
	PrinterModel       string `json:"printerModel" validate:"required"`
	ProblemCategory    string `json:"problemCategory" validate:"required"`
	ProblemDescription string `json:"problemDescription"`
	ServiceType        string `json:"serviceType" validate:"required,oneof=onsite pickup dropoff"`
	ServiceDate        string `json:"serviceDate" validate:"required,date"`
	ServiceTime        string `json:"serviceTime" validate:"required,clock"`
	EstimatedCost      string `json:"estimatedCost"`
}

type LookupRequest struct {
	Code  string `json:"code" validate:"required"`
	Phone string `json:"phone" validate:"required,phone"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,bookingstatus"`
}

type AssignRequest struct {
	TechnicianID string `json:"technicianId" validate:"required"`
}

type CostRequest struct {
	ActualCost string `json:"actualCost" validate:"required"`
}

// ListFilter mirrors the dashboard's bookings view: free-text query over
// id / customer name / customer phone plus an exact status filter ("" or
// "all" means every status).
type ListFilter struct {
	Query  string
	Status string
}
