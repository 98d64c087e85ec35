package request

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type CreateAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateAdminRequest carries four independently optional mutations.
// Only the fields present in the body are applied.
type UpdateAdminRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Type     *string `json:"type,omitempty" validate:"omitempty,oneof=user super_admin"`
	IsActive *bool   `json:"is_active,omitempty"`
}
