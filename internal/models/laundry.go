package models

import (
	"time"

	"gorm.io/datatypes"
)

// Status is the lifecycle state of a laundry request
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCollected  Status = "Collected"
)

// IsValidTarget reports whether s may be set directly through the status
// update endpoint. Collected is reachable only through collection completion.
func (s Status) IsValidTarget() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// PhotoAttachment describes one uploaded image referenced by a request
type PhotoAttachment struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
}

// LaundryRequest represents one laundry drop-off
// Standardized: Go (PascalCase) -> DB (snake_case) -> JSON (camelCase)
type LaundryRequest struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	StudentID       string         `gorm:"index" json:"studentId,omitempty"`
	Name            string         `gorm:"not null" json:"name"`
	Surname         string         `gorm:"not null" json:"surname"`
	Contact         string         `gorm:"not null" json:"contact"`
	Commune         string         `gorm:"not null" json:"commune"`
	Room            string         `json:"room,omitempty"`
	ClothesCount    int            `gorm:"default:0" json:"clothesCount"`
	Photos          datatypes.JSON `json:"photos,omitempty"`
	Status          Status         `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	ReferenceNumber string         `gorm:"uniqueIndex;not null" json:"referenceNumber"`
	DateSubmitted   time.Time      `gorm:"autoCreateTime" json:"dateSubmitted"`
	DateCompleted   *time.Time     `json:"dateCompleted,omitempty"`

	// Collection fields, populated only when status reaches Collected
	CollectionName      string     `json:"collectionName,omitempty"`
	CollectionContact   string     `json:"collectionContact,omitempty"`
	CollectionIDNumber  string     `json:"collectionIdNumber,omitempty"`
	CollectionSignature string     `json:"collectionSignature,omitempty"`
	CollectionDate      *time.Time `json:"collectionDate,omitempty"`

	WhatsappSent           bool `gorm:"default:false" json:"whatsappSent"`
	CollectionReminderSent bool `gorm:"default:false" json:"collectionReminderSent"`
}

// TableName specifies the table name for LaundryRequest model
func (LaundryRequest) TableName() string {
	return "laundry_requests"
}
