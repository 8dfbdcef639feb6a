package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles. There is no intermediate tier: an account is either a
// student or a back-office admin.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a registered student (or admin) in the system
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Name         string         `json:"name"`
	Mobile       *string        `gorm:"uniqueIndex" json:"mobile,omitempty"`            // nullable, so the unique index is sparse
	Role         string         `gorm:"type:varchar(20);default:'student'" json:"role"` // student, admin
	TokenVersion int            `gorm:"default:0" json:"-"`                             // Increment to invalidate all user tokens

	// Profile fields
	AvatarURL string `json:"avatar_url,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Country   string `json:"country,omitempty"`
	Zip       string `json:"zip,omitempty"`

	// Enrollment state. EnrolledCourse may only be true when TransactionID
	// references a verified payment or BypassPayment was set by an admin.
	EnrolledCourse bool    `gorm:"default:false" json:"enrolled_course"`
	Progress       int     `gorm:"default:0" json:"progress"`
	TransactionID  *string `json:"transaction_id"`
	BypassPayment  bool    `gorm:"default:false" json:"bypass_payment"`

	// Relationships
	Payments       []Payment           `gorm:"foreignKey:UserID" json:"-"`
	AdminAuditLog  []AdminAuditLog     `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
	TokenBlacklist []JWTTokenBlacklist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// PublicUser is the user shape returned by the enrollment and auth endpoints.
type PublicUser struct {
	ID             uint    `json:"id"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	Mobile         *string `json:"mobile,omitempty"`
	EnrolledCourse bool    `json:"enrolled_course"`
	Progress       int     `json:"progress"`
	TransactionID  *string `json:"transaction_id"`
}

// Public returns the externally visible fields of a user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Mobile:         u.Mobile,
		EnrolledCourse: u.EnrolledCourse,
		Progress:       u.Progress,
		TransactionID:  u.TransactionID,
	}
}
