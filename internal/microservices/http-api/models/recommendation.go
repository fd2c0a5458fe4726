package models

import "time"

type Recommendation struct {
	ID                int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID            string    `json:"user_id" gorm:"type:uuid;not null;index"`
	RecommendedBookID int64     `json:"recommended_book_id" gorm:"not null;index"`
	Message           *string   `json:"message,omitempty" gorm:"type:text"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User            User `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	RecommendedBook Book `json:"recommended_book" gorm:"foreignKey:RecommendedBookID;constraint:OnDelete:CASCADE;"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
