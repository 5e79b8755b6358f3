package model

import "time"

// Role of a platform user.
type Role string

const (
	RoleBuyer     Role = "buyer"
	RoleOrganizer Role = "organizer"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleOrganizer:
		return true
	}
	return false
}

type User struct {
	ID            int       `json:"id" db:"id"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	WalletAddress *string   `json:"wallet_address,omitempty" db:"wallet_address"`
	Role          Role      `json:"role" db:"role"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// HasWallet reports whether the user registered a wallet address.
func (u *User) HasWallet() bool {
	return u.WalletAddress != nil && *u.WalletAddress != ""
}

type RegisterRequest struct {
	Email         string  `json:"email" binding:"required,email"`
	Password      string  `json:"password" binding:"required,min=8"`
	WalletAddress *string `json:"wallet_address,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UpdateWalletRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required,len=42"`
}

type PromoteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type UserResponse struct {
	ID            int     `json:"id"`
	Email         string  `json:"email"`
	WalletAddress *string `json:"wallet_address,omitempty"`
	Role          Role    `json:"role"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		WalletAddress: u.WalletAddress,
		Role:          u.Role,
	}
}
