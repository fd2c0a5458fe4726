package dto

import (
	"time"

	"bookswap/internal/microservices/http-api/models"
)

// CreateRatingDTO for creating or fully replacing a rating
type CreateRatingDTO struct {
	BookID  int64   `json:"book_id" binding:"required,min=1"`
	Score   int     `json:"score" binding:"required,min=1,max=5"`
	Comment *string `json:"comment"`
}

// UpdateRatingDTO for partial updates
type UpdateRatingDTO struct {
	BookID  *int64  `json:"book_id" binding:"omitnil,min=1"`
	Score   *int    `json:"score" binding:"omitnil,min=1,max=5"`
	Comment *string `json:"comment"`
}

// RatingResponse nests the rater and the rated book
type RatingResponse struct {
	ID        int64        `json:"id"`
	Book      BookResponse `json:"book"`
	User      UserResponse `json:"user"`
	Score     int          `json:"score"`
	Comment   *string      `json:"comment"`
	CreatedAt time.Time    `json:"created_at"`
}

func (in CreateRatingDTO) ToModel() models.Rating {
	return models.Rating{
		BookID:  in.BookID,
		Score:   in.Score,
		Comment: in.Comment,
	}
}

func (in CreateRatingDTO) ApplyTo(m *models.Rating) {
	m.BookID = in.BookID
	m.Score = in.Score
	m.Comment = in.Comment
}

func (in UpdateRatingDTO) ApplyTo(m *models.Rating) {
	if in.BookID != nil {
		m.BookID = *in.BookID
	}
	if in.Score != nil {
		m.Score = *in.Score
	}
	if in.Comment != nil {
		m.Comment = in.Comment
	}
}

// FromModelToRatingResponse converts a Rating model to RatingResponse DTO
func FromModelToRatingResponse(r models.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		Book:      FromModelToBookResponse(r.Book),
		User:      FromModelToUserResponse(r.User),
		Score:     r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
