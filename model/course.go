package model

import (
	"time"

	"gorm.io/gorm"
)

// Course represents a sellable course. Prices are stored in paise (minor
// currency unit) to avoid floating point rounding.
type Course struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	Title            string         `gorm:"not null" json:"title"`
	Slug             string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description      string         `gorm:"type:text" json:"description"`
	ShortDescription string         `gorm:"type:text" json:"short_description"`
	Price            int64          `gorm:"not null" json:"price"`
	OriginalPrice    int64          `gorm:"not null" json:"original_price"`
	Discount         string         `gorm:"type:varchar(50);default:'50% OFF'" json:"discount"`
	Duration         string         `gorm:"type:varchar(50)" json:"duration"`
	Level            string         `gorm:"type:varchar(50);default:'Beginner'" json:"level"`
	Category         string         `gorm:"type:varchar(100)" json:"category"`
	Instructor       string         `gorm:"type:varchar(100)" json:"instructor"`
	Image            string         `json:"image"`
	Students         string         `gorm:"type:varchar(20);default:'0+'" json:"students"`
	Rating           float64        `gorm:"default:4.5" json:"rating"`
	Reviews          string         `gorm:"type:varchar(20);default:'0'" json:"reviews"`
	IsActive         bool           `gorm:"default:true" json:"is_active"` // gates purchasability

	// Relationships
	PriceHistory []PriceHistory `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Course
func (Course) TableName() string {
	return "courses"
}

// PriceHistory is an append-only log of course price changes. Rows are
// written best-effort when an admin updates a price and never mutated.
type PriceHistory struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	CourseID         uint      `gorm:"not null;index" json:"course_id"`
	OldPrice         int64     `gorm:"not null" json:"old_price"`
	NewPrice         int64     `gorm:"not null" json:"new_price"`
	OldOriginalPrice int64     `json:"old_original_price"`
	NewOriginalPrice int64     `json:"new_original_price"`
	OldDiscount      string    `gorm:"type:varchar(50)" json:"old_discount"`
	NewDiscount      string    `gorm:"type:varchar(50)" json:"new_discount"`
	ChangedByID      uint      `gorm:"index" json:"changed_by_id"`
	ChangeReason     string    `gorm:"type:text" json:"change_reason"`

	// Relationships
	Course    Course `gorm:"foreignKey:CourseID" json:"-"`
	ChangedBy User   `gorm:"foreignKey:ChangedByID" json:"changed_by,omitempty"`
}

// TableName specifies the table name for PriceHistory
func (PriceHistory) TableName() string {
	return "price_history"
}
