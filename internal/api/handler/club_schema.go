package handler

// Request schemas for the club endpoints. Logo is an opaque reference
// to an uploaded asset; upload mechanics live outside this service.

type createClubRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PresidentID string `json:"president_id,omitempty"`
	Type        string `json:"type,omitempty" validate:"omitempty,oneof=club association"`
	Logo        string `json:"logo,omitempty"`
}

type updateClubRequest struct {
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	PresidentID string `json:"president_id,omitempty"`
	Logo        string `json:"logo,omitempty"`
}
