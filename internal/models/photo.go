package models

import (
	"time"

	"gorm.io/datatypes"
)

// SavedPhoto is an uploaded image retained for reuse across submissions.
// Rows are append-only; there is no update or delete path.
type SavedPhoto struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	StudentID string         `gorm:"index;not null" json:"studentId"`
	PhotoName string         `gorm:"not null" json:"photoName"`
	PhotoPath string         `gorm:"not null" json:"photoPath"`
	PhotoData datatypes.JSON `json:"photoData,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// TableName specifies the table name for SavedPhoto model
func (SavedPhoto) TableName() string {
	return "saved_photos"
}
