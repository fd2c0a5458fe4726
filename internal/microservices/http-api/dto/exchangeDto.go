package dto

import (
	"time"

	"bookswap/internal/microservices/http-api/models"
)

type CreateExchangeDTO struct {
	OfferedBookID   int64   `json:"offered_book_id" binding:"required,min=1"`
	RequestedBookID int64   `json:"requested_book_id" binding:"required,min=1"`
	Status          *string `json:"status" binding:"omitnil,min=1,max=50"`
}

type UpdateExchangeDTO struct {
	OfferedBookID   *int64  `json:"offered_book_id" binding:"omitnil,min=1"`
	RequestedBookID *int64  `json:"requested_book_id" binding:"omitnil,min=1"`
	Status          *string `json:"status" binding:"omitnil,min=1,max=50"`
}

type ExchangeResponse struct {
	ID            int64        `json:"id"`
	OfferedBook   BookResponse `json:"offered_book"`
	RequestedBook BookResponse `json:"requested_book"`
	Status        string       `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (in CreateExchangeDTO) ToModel() models.Exchange {
	status := models.ExchangePending
	if in.Status != nil {
		status = *in.Status
	}
	return models.Exchange{
		OfferedBookID:   in.OfferedBookID,
		RequestedBookID: in.RequestedBookID,
		Status:          status,
	}
}

// Full replacement keeps the stored status when none is sent.
func (in CreateExchangeDTO) ApplyTo(m *models.Exchange) {
	m.OfferedBookID = in.OfferedBookID
	m.RequestedBookID = in.RequestedBookID
	if in.Status != nil {
		m.Status = *in.Status
	}
}

func (in UpdateExchangeDTO) ApplyTo(m *models.Exchange) {
	if in.OfferedBookID != nil {
		m.OfferedBookID = *in.OfferedBookID
	}
	if in.RequestedBookID != nil {
		m.RequestedBookID = *in.RequestedBookID
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
}

func FromModelToExchangeResponse(e models.Exchange) ExchangeResponse {
	return ExchangeResponse{
		ID:            e.ID,
		OfferedBook:   FromModelToBookResponse(e.OfferedBook),
		RequestedBook: FromModelToBookResponse(e.RequestedBook),
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
