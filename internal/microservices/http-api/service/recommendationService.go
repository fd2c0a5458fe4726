package service

import (
	"context"

	"bookswap/internal/microservices/http-api/models"
	"bookswap/internal/microservices/http-api/repository"
)

// RecommendationService shows a user the recommendations they made and the
// ones aimed at books they own.
type RecommendationService interface {
	List(ctx context.Context, actorID string, offset, limit int) ([]models.Recommendation, int64, error)
	Get(ctx context.Context, actorID string, id int64) (*models.Recommendation, error)
	Create(ctx context.Context, actorID string, rec *models.Recommendation) (*models.Recommendation, error)
	Update(ctx context.Context, actorID string, id int64, apply func(*models.Recommendation)) (*models.Recommendation, error)
	Delete(ctx context.Context, actorID string, id int64) error
}

type recommendationService struct {
	repo  repository.RecommendationRepository
	books repository.BookRepository
}

func NewRecommendationService(repo repository.RecommendationRepository, books repository.BookRepository) RecommendationService {
	return &recommendationService{repo: repo, books: books}
}

func (s *recommendationService) List(ctx context.Context, actorID string, offset, limit int) ([]models.Recommendation, int64, error) {
	if actorID == "" {
		return nil, 0, ErrForbidden
	}
	return s.repo.List(ctx, repository.RecommendationFilter{ViewerID: actorID}, offset, limit)
}

func (s *recommendationService) Get(ctx context.Context, actorID string, id int64) (*models.Recommendation, error) {
	if actorID == "" {
		return nil, ErrForbidden
	}
	rec, err := s.repo.GetByID(ctx, id, actorID)
	if err != nil {
		return nil, notFound("recommendation", err)
	}
	return rec, nil
}

// Create stamps the actor as recommender.
func (s *recommendationService) Create(ctx context.Context, actorID string, rec *models.Recommendation) (*models.Recommendation, error) {
	rec.ID = 0
	rec.UserID = actorID

	if err := bookExists(ctx, s.books, rec.RecommendedBookID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, translateReference(err, "recommendation")
	}
	return s.Get(ctx, actorID, rec.ID)
}

// Update is limited to the recommender; the owner of the target book can
// read but not edit.
func (s *recommendationService) Update(ctx context.Context, actorID string, id int64, apply func(*models.Recommendation)) (*models.Recommendation, error) {
	rec, err := s.Get(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(rec.UserID, actorID); err != nil {
		return nil, err
	}

	apply(rec)
	rec.ID = id
	rec.UserID = actorID

	if err := bookExists(ctx, s.books, rec.RecommendedBookID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, translateReference(err, "recommendation")
	}
	return s.Get(ctx, actorID, id)
}

func (s *recommendationService) Delete(ctx context.Context, actorID string, id int64) error {
	rec, err := s.Get(ctx, actorID, id)
	if err != nil {
		return err
	}
	if err := requireOwner(rec.UserID, actorID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound("recommendation", err)
	}
	return nil
}
