package models

import "time"

type Book struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Author      string    `json:"author" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	ISBN        *string   `json:"isbn,omitempty" gorm:"column:isbn;size:13;uniqueIndex"`
	OwnerID     string    `json:"owner_id" gorm:"type:uuid;not null;index"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Owner User `json:"owner" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
}

func (Book) TableName() string {
	return "books"
}
