package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment is the audit record of one gateway transaction. It is created once,
// right after signature verification succeeds and the authoritative payment
// object has been fetched from the gateway, and is never updated by the
// normal flow. PaymentID is globally unique so a replayed payment id cannot
// create a duplicate row.
type Payment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    *uint          `gorm:"index" json:"user_id"` // back-filled once the owning user is resolved
	Email     string         `gorm:"index" json:"email"`
	OrderID   string         `gorm:"type:varchar(100);not null;index" json:"order_id"`
	PaymentID string         `gorm:"type:varchar(100);not null;uniqueIndex" json:"payment_id"`
	Signature string         `gorm:"not null" json:"-"`
	Amount    int64          `json:"amount"` // paise
	Currency  string         `gorm:"type:varchar(10)" json:"currency"`
	Status    string         `gorm:"type:varchar(20)" json:"status"` // gateway-reported, e.g. captured
	Method    string         `gorm:"type:varchar(50)" json:"method"`
	Notes     datatypes.JSON `gorm:"type:jsonb" json:"notes,omitempty"`
	Raw       datatypes.JSON `gorm:"type:jsonb" json:"-"` // opaque gateway response, kept for forensics

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}
