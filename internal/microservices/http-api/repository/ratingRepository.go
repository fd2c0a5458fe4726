package repository

import (
	"context"
	"fmt"

	"bookswap/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingFilter narrows rating listings. Zero values mean no restriction.
type RatingFilter struct {
	BookID int64
	Score  int
	// Search matches the book title, the rater's username or the comment.
	Search string
}

type RatingRepository interface {
	List(ctx context.Context, filter RatingFilter, offset, limit int) ([]models.Rating, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Rating, error)
	GetByBookAndUser(ctx context.Context, bookID int64, userID string) (*models.Rating, error)
	Create(ctx context.Context, rating *models.Rating) error
	Update(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, id int64) error
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) filtered(ctx context.Context, filter RatingFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Rating{})
	if filter.BookID != 0 {
		q = q.Where("book_id = ?", filter.BookID)
	}
	if filter.Score != 0 {
		q = q.Where("score = ?", filter.Score)
	}
	for _, term := range searchTerms(filter.Search) {
		bookWhere, bookArgs := termClause(term, "title")
		userWhere, userArgs := termClause(term, "username")
		commentWhere, commentArgs := termClause(term, "comment")
		args := []interface{}{
			r.db.Model(&models.Book{}).Select("id").Where(bookWhere, bookArgs...),
			r.db.Model(&models.User{}).Select("id").Where(userWhere, userArgs...),
		}
		args = append(args, commentArgs...)
		q = q.Where("(book_id IN (?) OR user_id IN (?) OR "+commentWhere+")", args...)
	}
	return q
}

func (r *ratingRepository) List(ctx context.Context, filter RatingFilter, offset, limit int) ([]models.Rating, int64, error) {
	var ratings []models.Rating
	var total int64

	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count ratings: %w", err)
	}

	err := r.filtered(ctx, filter).
		Preload("User").
		Preload("Book.Owner").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, total, nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book.Owner").
		First(&rating, id).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetByBookAndUser retrieves a user's rating for a specific book
func (r *ratingRepository) GetByBookAndUser(ctx context.Context, bookID int64, userID string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Create relies on idx_ratings_book_user to reject a second (book, user) pair
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rating).Error
}

func (r *ratingRepository) Update(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rating).Error
}

func (r *ratingRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Rating{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
