package domain

import "time"

// User account (users table)
type User struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Email     string    `gorm:"column:email;uniqueIndex;type:varchar(255)" json:"email"`
	Name      string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Password  string    `gorm:"column:password;type:varchar(255)" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// AuthorSummary author reference embedded in work responses
type AuthorSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// RegisterRequest sign-up body
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest token refresh body
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LoginResponse issued token pair
type LoginResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	ExpiresIn    int           `json:"expiresIn"`
	User         AuthorSummary `json:"user"`
}
