package printerbrands

type UpsertRequest struct {
	Name     string `json:"name" validate:"required"`
	IsActive *bool  `json:"isActive"`
}

type ModelRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required,oneof=inkjet laser dot-matrix thermal multifunction"`
}
