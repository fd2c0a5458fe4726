package service

import (
	"context"
	"errors"
	"fmt"

	"bookswap/internal/microservices/http-api/models"
	"bookswap/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type RatingService interface {
	List(ctx context.Context, filter repository.RatingFilter, offset, limit int) ([]models.Rating, int64, error)
	Get(ctx context.Context, id int64) (*models.Rating, error)
	Create(ctx context.Context, actorID string, r *models.Rating) (*models.Rating, error)
	Update(ctx context.Context, actorID string, id int64, apply func(*models.Rating)) (*models.Rating, error)
	Delete(ctx context.Context, actorID string, id int64) error
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	books      repository.BookRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, books repository.BookRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		books:      books,
	}
}

// List is unrestricted: every rating is visible to every user.
func (s *ratingService) List(ctx context.Context, filter repository.RatingFilter, offset, limit int) ([]models.Rating, int64, error) {
	return s.ratingRepo.List(ctx, filter, offset, limit)
}

func (s *ratingService) Get(ctx context.Context, id int64) (*models.Rating, error) {
	r, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("rating", err)
	}
	return r, nil
}

// Create stamps the actor as rater; a second rating of the same book by
// the same user is rejected.
func (s *ratingService) Create(ctx context.Context, actorID string, r *models.Rating) (*models.Rating, error) {
	r.ID = 0
	r.UserID = actorID

	if err := bookExists(ctx, s.books, r.BookID); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, r); err != nil {
		return nil, err
	}
	if err := s.ratingRepo.Create(ctx, r); err != nil {
		return nil, s.translate(err)
	}
	return s.Get(ctx, r.ID)
}

// Update is limited to the rater.
func (s *ratingService) Update(ctx context.Context, actorID string, id int64, apply func(*models.Rating)) (*models.Rating, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(r.UserID, actorID); err != nil {
		return nil, err
	}

	apply(r)
	r.ID = id
	r.UserID = actorID

	if err := bookExists(ctx, s.books, r.BookID); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, r); err != nil {
		return nil, err
	}
	if err := s.ratingRepo.Update(ctx, r); err != nil {
		return nil, s.translate(err)
	}
	return s.Get(ctx, id)
}

func (s *ratingService) Delete(ctx context.Context, actorID string, id int64) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(r.UserID, actorID); err != nil {
		return err
	}
	if err := s.ratingRepo.Delete(ctx, id); err != nil {
		return notFound("rating", err)
	}
	return nil
}

func (s *ratingService) checkUnique(ctx context.Context, r *models.Rating) error {
	existing, err := s.ratingRepo.GetByBookAndUser(ctx, r.BookID, r.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("lookup rating: %w", err)
	}
	if existing.ID != r.ID {
		return ErrDuplicateRating
	}
	return nil
}

// translate covers the race where two requests pass checkUnique together;
// the unique index on (book_id, user_id) rejects the loser.
func (s *ratingService) translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateRating
	}
	return translateReference(err, "rating")
}
