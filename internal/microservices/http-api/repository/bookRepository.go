package repository

import (
	"context"
	"fmt"
	"strings"

	"bookswap/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookFilter narrows book listings. Zero values mean no restriction.
type BookFilter struct {
	// Search requires every term to appear in title, author, description or isbn.
	Search  string
	OwnerID string
	Author  string
}

type BookRepository interface {
	List(ctx context.Context, filter BookFilter, offset, limit int) ([]models.Book, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*models.Book, error)
	Create(ctx context.Context, b *models.Book) error
	Update(ctx context.Context, b *models.Book) error
	Delete(ctx context.Context, id int64) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) filtered(ctx context.Context, filter BookFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Book{})
	if filter.OwnerID != "" {
		q = q.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Author != "" {
		q = q.Where("LOWER(author) = ?", strings.ToLower(filter.Author))
	}
	for _, term := range searchTerms(filter.Search) {
		where, args := termClause(term, "title", "author", "description", "isbn")
		q = q.Where(where, args...)
	}
	return q
}

func (r *bookRepository) List(ctx context.Context, filter BookFilter, offset, limit int) ([]models.Book, int64, error) {
	var list []models.Book
	var total int64

	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	if err := r.filtered(ctx, filter).
		Preload("Owner").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	return list, total, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).Preload("Owner").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) Create(ctx context.Context, b *models.Book) error {
	// GORM will populate b.ID and b.CreatedAt
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *bookRepository) Update(ctx context.Context, b *models.Book) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
