package dto

import (
	"time"

	"bookswap/internal/microservices/http-api/models"
)

type CreateRecommendationDTO struct {
	RecommendedBookID int64   `json:"recommended_book_id" binding:"required,min=1"`
	Message           *string `json:"message"`
}

type UpdateRecommendationDTO struct {
	RecommendedBookID *int64  `json:"recommended_book_id" binding:"omitnil,min=1"`
	Message           *string `json:"message"`
}

type RecommendationResponse struct {
	ID              int64        `json:"id"`
	User            UserResponse `json:"user"`
	RecommendedBook BookResponse `json:"recommended_book"`
	Message         *string      `json:"message"`
	CreatedAt       time.Time    `json:"created_at"`
}

func (in CreateRecommendationDTO) ToModel() models.Recommendation {
	return models.Recommendation{
		RecommendedBookID: in.RecommendedBookID,
		Message:           in.Message,
	}
}

func (in CreateRecommendationDTO) ApplyTo(m *models.Recommendation) {
	m.RecommendedBookID = in.RecommendedBookID
	m.Message = in.Message
}

func (in UpdateRecommendationDTO) ApplyTo(m *models.Recommendation) {
	if in.RecommendedBookID != nil {
		m.RecommendedBookID = *in.RecommendedBookID
	}
	if in.Message != nil {
		m.Message = in.Message
	}
}

func FromModelToRecommendationResponse(r models.Recommendation) RecommendationResponse {
	return RecommendationResponse{
		ID:              r.ID,
		User:            FromModelToUserResponse(r.User),
		RecommendedBook: FromModelToBookResponse(r.RecommendedBook),
		Message:         r.Message,
		CreatedAt:       r.CreatedAt,
	}
}
