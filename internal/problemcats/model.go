package problemcats

type UpsertRequest struct {
	Name     string `json:"name" validate:"required"`
	Icon     string `json:"icon" validate:"required,categoryicon"`
	IsActive *bool  `json:"isActive"`
}

type ProblemRequest struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	Severity      string `json:"severity" validate:"required,oneof=low medium high"`
	EstimatedTime string `json:"estimatedTime" validate:"required"`
	EstimatedCost string `json:"estimatedCost" validate:"required"`
}
