package models

import "time"

// UserProfile stores a student's saved contact and location details so repeat
// submissions can be prefilled without re-entering every field
type UserProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID string    `gorm:"uniqueIndex;not null" json:"studentId"`
	Name      string    `gorm:"not null" json:"name"`
	Surname   string    `gorm:"not null" json:"surname"`
	Contact   string    `gorm:"not null" json:"contact"`
	Commune   string    `gorm:"not null" json:"commune"`
	Room      string    `gorm:"not null" json:"room"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for UserProfile model
func (UserProfile) TableName() string {
	return "user_profiles"
}
