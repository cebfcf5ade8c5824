package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LoginRequest carries the staff PIN typed at the lock screen.
type LoginRequest struct {
	Pin string `json:"pin" validate:"required,min=4,max=8,numeric"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateStaffRequest struct {
	Name string `json:"name" validate:"required,min=2"`
	Role string `json:"role" validate:"required,oneof=cashier manager admin"`
	Pin  string `json:"pin"  validate:"required,min=4,max=8,numeric"`
}

type UpdateStaffRequest struct {
	Name string `json:"name" validate:"omitempty,min=2"`
	Role string `json:"role" validate:"omitempty,oneof=cashier manager admin"`
	Pin  string `json:"pin"  validate:"omitempty,min=4,max=8,numeric"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StaffResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int           `json:"expires_in"`
	Staff        StaffResponse `json:"staff"`
}
