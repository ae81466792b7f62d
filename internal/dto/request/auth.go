package request

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type CreateUserRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2,max=120"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role" validate:"required,oneof=super_admin owner crew seller"`
	AgencyID *string `json:"agency_id,omitempty" validate:"omitempty,uuid4"`
}

type UpdateUserRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2,max=120"`
	Role     string  `json:"role" validate:"required,oneof=super_admin owner crew seller"`
	AgencyID *string `json:"agency_id,omitempty" validate:"omitempty,uuid4"`
	IsActive *bool   `json:"is_active,omitempty"`
}
