package service

import (
	"context"
	"errors"
	"fmt"

	"bookswap/internal/microservices/http-api/models"
	"bookswap/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// ExchangeService restricts every operation to exchanges the actor takes
// part in. Status is free-form: any participant may set any value.
type ExchangeService interface {
	List(ctx context.Context, actorID, status string, offset, limit int) ([]models.Exchange, int64, error)
	Get(ctx context.Context, actorID string, id int64) (*models.Exchange, error)
	Create(ctx context.Context, actorID string, e *models.Exchange) (*models.Exchange, error)
	Update(ctx context.Context, actorID string, id int64, apply func(*models.Exchange)) (*models.Exchange, error)
	Delete(ctx context.Context, actorID string, id int64) error
}

type exchangeService struct {
	repo  repository.ExchangeRepository
	books repository.BookRepository
}

func NewExchangeService(repo repository.ExchangeRepository, books repository.BookRepository) ExchangeService {
	return &exchangeService{repo: repo, books: books}
}

func (s *exchangeService) List(ctx context.Context, actorID, status string, offset, limit int) ([]models.Exchange, int64, error) {
	if actorID == "" {
		return nil, 0, ErrForbidden
	}
	return s.repo.List(ctx, repository.ExchangeFilter{ParticipantID: actorID, Status: status}, offset, limit)
}

func (s *exchangeService) Get(ctx context.Context, actorID string, id int64) (*models.Exchange, error) {
	if actorID == "" {
		return nil, ErrForbidden
	}
	e, err := s.repo.GetByID(ctx, id, actorID)
	if err != nil {
		return nil, notFound("exchange", err)
	}
	return e, nil
}

func (s *exchangeService) Create(ctx context.Context, actorID string, e *models.Exchange) (*models.Exchange, error) {
	e.ID = 0
	if e.Status == "" {
		e.Status = models.ExchangePending
	}
	if err := s.checkBooks(ctx, e); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, translateReference(err, "exchange")
	}
	// the creator is not required to own either book, so reload unscoped
	created, err := s.repo.GetByID(ctx, e.ID, "")
	if err != nil {
		return nil, notFound("exchange", err)
	}
	return created, nil
}

func (s *exchangeService) Update(ctx context.Context, actorID string, id int64, apply func(*models.Exchange)) (*models.Exchange, error) {
	e, err := s.Get(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	apply(e)
	e.ID = id

	if err := s.checkBooks(ctx, e); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, translateReference(err, "exchange")
	}
	updated, err := s.repo.GetByID(ctx, id, "")
	if err != nil {
		return nil, notFound("exchange", err)
	}
	return updated, nil
}

func (s *exchangeService) Delete(ctx context.Context, actorID string, id int64) error {
	if _, err := s.Get(ctx, actorID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound("exchange", err)
	}
	return nil
}

func (s *exchangeService) checkBooks(ctx context.Context, e *models.Exchange) error {
	if err := bookExists(ctx, s.books, e.OfferedBookID); err != nil {
		return err
	}
	return bookExists(ctx, s.books, e.RequestedBookID)
}

// bookExists turns an unknown book id into ErrInvalidReference.
func bookExists(ctx context.Context, books repository.BookRepository, id int64) error {
	if _, err := books.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("book %d: %w", id, ErrInvalidReference)
		}
		return fmt.Errorf("load book %d: %w", id, err)
	}
	return nil
}

func translateReference(err error, what string) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrInvalidReference
	}
	return fmt.Errorf("save %s: %w", what, err)
}
