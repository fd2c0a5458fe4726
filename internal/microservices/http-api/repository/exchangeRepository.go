package repository

import (
	"context"
	"fmt"

	"bookswap/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExchangeFilter narrows exchange listings. An empty ParticipantID lists
// every exchange and is only used by the admin CLI.
type ExchangeFilter struct {
	ParticipantID string
	Status        string
	// Search matches the offered or requested book title.
	Search string
}

type ExchangeRepository interface {
	List(ctx context.Context, filter ExchangeFilter, offset, limit int) ([]models.Exchange, int64, error)
	GetByID(ctx context.Context, id int64, participantID string) (*models.Exchange, error)
	Create(ctx context.Context, e *models.Exchange) error
	Update(ctx context.Context, e *models.Exchange) error
	Delete(ctx context.Context, id int64) error
}

type exchangeRepository struct {
	db *gorm.DB
}

func NewExchangeRepository(db *gorm.DB) ExchangeRepository {
	return &exchangeRepository{db: db}
}

// ownedBookIDs is the subquery of book ids owned by userID.
func (r *exchangeRepository) ownedBookIDs(userID string) *gorm.DB {
	return r.db.Model(&models.Book{}).Select("id").Where("owner_id = ?", userID)
}

// participant keeps exchanges where userID owns the offered book or the
// requested book (union, not intersection).
func (r *exchangeRepository) participant(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if userID == "" {
			return db
		}
		return db.Where("(offered_book_id IN (?) OR requested_book_id IN (?))",
			r.ownedBookIDs(userID), r.ownedBookIDs(userID))
	}
}

func (r *exchangeRepository) filtered(ctx context.Context, filter ExchangeFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Exchange{}).Scopes(r.participant(filter.ParticipantID))
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	for _, term := range searchTerms(filter.Search) {
		where, args := termClause(term, "title")
		titles := r.db.Model(&models.Book{}).Select("id").Where(where, args...)
		titles2 := r.db.Model(&models.Book{}).Select("id").Where(where, args...)
		q = q.Where("(offered_book_id IN (?) OR requested_book_id IN (?))", titles, titles2)
	}
	return q
}

func (r *exchangeRepository) withBooks(db *gorm.DB) *gorm.DB {
	return db.Preload("OfferedBook.Owner").Preload("RequestedBook.Owner")
}

func (r *exchangeRepository) List(ctx context.Context, filter ExchangeFilter, offset, limit int) ([]models.Exchange, int64, error) {
	var list []models.Exchange
	var total int64

	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count exchanges: %w", err)
	}

	if err := r.filtered(ctx, filter).
		Scopes(r.withBooks).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list exchanges: %w", err)
	}
	return list, total, nil
}

// GetByID returns gorm.ErrRecordNotFound when the exchange exists but is
// outside participantID's visible set.
func (r *exchangeRepository) GetByID(ctx context.Context, id int64, participantID string) (*models.Exchange, error) {
	var e models.Exchange
	err := r.db.WithContext(ctx).
		Scopes(r.participant(participantID), r.withBooks).
		Where("id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *exchangeRepository) Create(ctx context.Context, e *models.Exchange) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
}

func (r *exchangeRepository) Update(ctx context.Context, e *models.Exchange) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error
}

func (r *exchangeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Exchange{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
