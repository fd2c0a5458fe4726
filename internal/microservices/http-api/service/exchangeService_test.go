package service

import (
	"context"
	"testing"

	"bookswap/internal/microservices/http-api/models"
	"bookswap/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestExchangeService_ListScopedToActor(t *testing.T) {
	repo := new(MockExchangeRepository)
	svc := NewExchangeService(repo, new(MockBookRepository))

	want := repository.ExchangeFilter{ParticipantID: "alice", Status: "pending"}
	repo.On("List", mock.Anything, want, 0, 10).Return([]models.Exchange{{ID: 1}}, int64(1), nil)

	items, total, err := svc.List(context.Background(), "alice", "pending", 0, 10)

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), total)
	repo.AssertExpectations(t)
}

func TestExchangeService_ListAnonymous(t *testing.T) {
	svc := NewExchangeService(new(MockExchangeRepository), new(MockBookRepository))

	_, _, err := svc.List(context.Background(), "", "", 0, 10)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExchangeService_CreateDefaultsStatus(t *testing.T) {
	repo := new(MockExchangeRepository)
	books := new(MockBookRepository)
	svc := NewExchangeService(repo, books)

	books.On("GetByID", mock.Anything, int64(1)).Return(&models.Book{ID: 1}, nil)
	books.On("GetByID", mock.Anything, int64(2)).Return(&models.Book{ID: 2}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *models.Exchange) bool {
		return e.Status == models.ExchangePending
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Exchange).ID = 5
	}).Return(nil)
	repo.On("GetByID", mock.Anything, int64(5), "").Return(&models.Exchange{ID: 5, Status: models.ExchangePending}, nil)

	e, err := svc.Create(context.Background(), "carol", &models.Exchange{OfferedBookID: 1, RequestedBookID: 2})

	require.NoError(t, err)
	assert.Equal(t, models.ExchangePending, e.Status)
	repo.AssertExpectations(t)
}

func TestExchangeService_CreateUnknownBook(t *testing.T) {
	repo := new(MockExchangeRepository)
	books := new(MockBookRepository)
	svc := NewExchangeService(repo, books)

	books.On("GetByID", mock.Anything, int64(1)).Return(&models.Book{ID: 1}, nil)
	books.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), "carol", &models.Exchange{OfferedBookID: 1, RequestedBookID: 99})

	assert.ErrorIs(t, err, ErrInvalidReference)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExchangeService_UpdateInvisibleIsNotFound(t *testing.T) {
	repo := new(MockExchangeRepository)
	svc := NewExchangeService(repo, new(MockBookRepository))

	repo.On("GetByID", mock.Anything, int64(5), "mallory").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Update(context.Background(), "mallory", 5, func(e *models.Exchange) { e.Status = "accepted" })

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExchangeService_UpdateFreeFormStatus(t *testing.T) {
	repo := new(MockExchangeRepository)
	books := new(MockBookRepository)
	svc := NewExchangeService(repo, books)

	repo.On("GetByID", mock.Anything, int64(5), "alice").Return(&models.Exchange{ID: 5, OfferedBookID: 1, RequestedBookID: 2, Status: "pending"}, nil)
	books.On("GetByID", mock.Anything, mock.Anything).Return(&models.Book{}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(e *models.Exchange) bool {
		return e.Status == "whatever"
	})).Return(nil)
	repo.On("GetByID", mock.Anything, int64(5), "").Return(&models.Exchange{ID: 5, Status: "whatever"}, nil)

	e, err := svc.Update(context.Background(), "alice", 5, func(e *models.Exchange) { e.Status = "whatever" })

	require.NoError(t, err)
	assert.Equal(t, "whatever", e.Status)
}

func TestExchangeService_DeleteVisible(t *testing.T) {
	repo := new(MockExchangeRepository)
	svc := NewExchangeService(repo, new(MockBookRepository))

	repo.On("GetByID", mock.Anything, int64(5), "bob").Return(&models.Exchange{ID: 5}, nil)
	repo.On("Delete", mock.Anything, int64(5)).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), "bob", 5))
	repo.AssertExpectations(t)
}
