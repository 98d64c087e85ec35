package request

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,numeric,min=4,max=8"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
