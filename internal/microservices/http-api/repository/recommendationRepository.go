package repository

import (
	"context"
	"fmt"

	"bookswap/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecommendationFilter narrows recommendation listings. An empty ViewerID
// lists every recommendation and is only used by the admin CLI.
type RecommendationFilter struct {
	ViewerID string
	// Search matches the recommender's username, the book title or the message.
	Search string
}

type RecommendationRepository interface {
	List(ctx context.Context, filter RecommendationFilter, offset, limit int) ([]models.Recommendation, int64, error)
	GetByID(ctx context.Context, id int64, viewerID string) (*models.Recommendation, error)
	Create(ctx context.Context, rec *models.Recommendation) error
	Update(ctx context.Context, rec *models.Recommendation) error
	Delete(ctx context.Context, id int64) error
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

// visibleTo keeps recommendations made by userID plus those targeting a book
// userID owns.
func (r *recommendationRepository) visibleTo(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if userID == "" {
			return db
		}
		owned := r.db.Model(&models.Book{}).Select("id").Where("owner_id = ?", userID)
		return db.Where("(user_id = ? OR recommended_book_id IN (?))", userID, owned)
	}
}

func (r *recommendationRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("RecommendedBook.Owner")
}

func (r *recommendationRepository) filtered(ctx context.Context, filter RecommendationFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Recommendation{}).Scopes(r.visibleTo(filter.ViewerID))
	for _, term := range searchTerms(filter.Search) {
		bookWhere, bookArgs := termClause(term, "title")
		userWhere, userArgs := termClause(term, "username")
		messageWhere, messageArgs := termClause(term, "message")
		args := []interface{}{
			r.db.Model(&models.User{}).Select("id").Where(userWhere, userArgs...),
			r.db.Model(&models.Book{}).Select("id").Where(bookWhere, bookArgs...),
		}
		args = append(args, messageArgs...)
		q = q.Where("(user_id IN (?) OR recommended_book_id IN (?) OR "+messageWhere+")", args...)
	}
	return q
}

func (r *recommendationRepository) List(ctx context.Context, filter RecommendationFilter, offset, limit int) ([]models.Recommendation, int64, error) {
	var list []models.Recommendation
	var total int64

	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count recommendations: %w", err)
	}

	if err := r.filtered(ctx, filter).
		Scopes(r.withRelations).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list recommendations: %w", err)
	}
	return list, total, nil
}

func (r *recommendationRepository) GetByID(ctx context.Context, id int64, viewerID string) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := r.db.WithContext(ctx).
		Scopes(r.visibleTo(viewerID), r.withRelations).
		Where("id = ?", id).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recommendationRepository) Create(ctx context.Context, rec *models.Recommendation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error
}

func (r *recommendationRepository) Update(ctx context.Context, rec *models.Recommendation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rec).Error
}

func (r *recommendationRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Recommendation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
