package dto

import (
	"strings"
	"time"

	"bookswap/internal/microservices/http-api/models"
)

// BookResponse: owner is nested and read-only
type BookResponse struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Author      string       `json:"author"`
	Description string       `json:"description"`
	ISBN        *string      `json:"isbn"`
	Owner       UserResponse `json:"owner"`
	ImageURL    *string      `json:"image_url"`
	CreatedAt   time.Time    `json:"created_at"`
}

// CreateBookDTO is used for POST and for full replacement (PUT)
type CreateBookDTO struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Author      string  `json:"author" binding:"required,max=255"`
	Description string  `json:"description" binding:"required"`
	ISBN        *string `json:"isbn" binding:"omitempty,max=13"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
}

// UpdateBookDTO is used for PATCH; nil fields are left untouched
type UpdateBookDTO struct {
	Title       *string `json:"title" binding:"omitnil,min=1,max=255"`
	Author      *string `json:"author" binding:"omitnil,min=1,max=255"`
	Description *string `json:"description" binding:"omitnil,min=1"`
	ISBN        *string `json:"isbn" binding:"omitempty,max=13"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
}

// ToModel builds a Book without an owner; the service stamps it.
func (in CreateBookDTO) ToModel() models.Book {
	return models.Book{
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		ISBN:        blankToNil(in.ISBN),
		ImageURL:    blankToNil(in.ImageURL),
	}
}

// ApplyTo replaces every writable field of m (PUT).
func (in CreateBookDTO) ApplyTo(m *models.Book) {
	m.Title = in.Title
	m.Author = in.Author
	m.Description = in.Description
	m.ISBN = blankToNil(in.ISBN)
	m.ImageURL = blankToNil(in.ImageURL)
}

// ApplyTo copies the fields that were sent onto m (PATCH).
func (in UpdateBookDTO) ApplyTo(m *models.Book) {
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Author != nil {
		m.Author = *in.Author
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.ISBN != nil {
		m.ISBN = blankToNil(in.ISBN)
	}
	if in.ImageURL != nil {
		m.ImageURL = blankToNil(in.ImageURL)
	}
}

func FromModelToBookResponse(b models.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		ISBN:        b.ISBN,
		Owner:       FromModelToUserResponse(b.Owner),
		ImageURL:    b.ImageURL,
		CreatedAt:   b.CreatedAt,
	}
}

// blankToNil stores empty optional strings as NULL so the unique isbn index
// ignores them.
func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
