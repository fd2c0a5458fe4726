package models

import "time"

// Known exchange states. Status is stored as free text and nothing enforces
// transitions between these values.
const (
	ExchangePending   = "pending"
	ExchangeAccepted  = "accepted"
	ExchangeRejected  = "rejected"
	ExchangeCompleted = "completed"
)

type Exchange struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OfferedBookID   int64     `json:"offered_book_id" gorm:"not null;index"`
	RequestedBookID int64     `json:"requested_book_id" gorm:"not null;index"`
	Status          string    `json:"status" gorm:"size:50;not null;default:'pending'"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	OfferedBook   Book `json:"offered_book" gorm:"foreignKey:OfferedBookID;constraint:OnDelete:CASCADE;"`
	RequestedBook Book `json:"requested_book" gorm:"foreignKey:RequestedBookID;constraint:OnDelete:CASCADE;"`
}

func (Exchange) TableName() string {
	return "exchanges"
}
