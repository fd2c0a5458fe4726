package service

import (
	"context"
	"errors"
	"fmt"

	"bookswap/internal/microservices/http-api/models"
	"bookswap/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type BookService interface {
	List(ctx context.Context, filter repository.BookFilter, offset, limit int) ([]models.Book, int64, error)
	Get(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, actorID string, b *models.Book) (*models.Book, error)
	Update(ctx context.Context, actorID string, id int64, apply func(*models.Book)) (*models.Book, error)
	Delete(ctx context.Context, actorID string, id int64) error
}

type bookService struct {
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository) BookService {
	return &bookService{repo: repo}
}

func (s *bookService) List(ctx context.Context, filter repository.BookFilter, offset, limit int) ([]models.Book, int64, error) {
	return s.repo.List(ctx, filter, offset, limit)
}

func (s *bookService) Get(ctx context.Context, id int64) (*models.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("book", err)
	}
	return b, nil
}

// Create stamps the acting identity as owner.
func (s *bookService) Create(ctx context.Context, actorID string, b *models.Book) (*models.Book, error) {
	b.ID = 0
	b.OwnerID = actorID
	if err := s.checkISBN(ctx, b); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, s.translate(err)
	}
	return s.Get(ctx, b.ID)
}

// Update applies changes to a book owned by actorID. Ownership cannot be
// reassigned through apply.
func (s *bookService) Update(ctx context.Context, actorID string, id int64, apply func(*models.Book)) (*models.Book, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(b.OwnerID, actorID); err != nil {
		return nil, err
	}

	apply(b)
	b.ID = id
	b.OwnerID = actorID

	if err := s.checkISBN(ctx, b); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, s.translate(err)
	}
	return s.Get(ctx, id)
}

func (s *bookService) Delete(ctx context.Context, actorID string, id int64) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(b.OwnerID, actorID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound("book", err)
	}
	return nil
}

func (s *bookService) checkISBN(ctx context.Context, b *models.Book) error {
	if b.ISBN == nil {
		return nil
	}
	existing, err := s.repo.FindByISBN(ctx, *b.ISBN)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("lookup isbn: %w", err)
	}
	if existing.ID != b.ID {
		return ErrDuplicateISBN
	}
	return nil
}

func (s *bookService) translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateISBN
	}
	return fmt.Errorf("save book: %w", err)
}
