package request

type CreateItineraryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
	Origin      string  `json:"origin" validate:"required,min=2,max=120"`
	Destination string  `json:"destination" validate:"required,min=2,max=120"`
}

type UpdateItineraryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}

type StopRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=120"`
	DwellMinutes int    `json:"dwell_minutes" validate:"min=0"`
}

type MoveStopRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

type ToggleRequest struct {
	IsActive bool `json:"is_active"`
}
