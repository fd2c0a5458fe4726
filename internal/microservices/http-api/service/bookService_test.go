package service

import (
	"context"
	"testing"

	"bookswap/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func TestBookService_CreateStampsOwner(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)

	repo.On("FindByISBN", mock.Anything, "9780441013593").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Book) bool {
		return b.OwnerID == "alice"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Book).ID = 7
	}).Return(nil)
	repo.On("GetByID", mock.Anything, int64(7)).Return(&models.Book{ID: 7, Title: "Dune", OwnerID: "alice"}, nil)

	in := &models.Book{Title: "Dune", OwnerID: "mallory", ISBN: strPtr("9780441013593")}
	b, err := svc.Create(context.Background(), "alice", in)

	require.NoError(t, err)
	assert.Equal(t, int64(7), b.ID)
	assert.Equal(t, "alice", b.OwnerID)
	repo.AssertExpectations(t)
}

func TestBookService_CreateDuplicateISBN(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)

	repo.On("FindByISBN", mock.Anything, "123").Return(&models.Book{ID: 3}, nil)

	_, err := svc.Create(context.Background(), "alice", &models.Book{Title: "x", ISBN: strPtr("123")})

	assert.ErrorIs(t, err, ErrDuplicateISBN)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookService_UpdateByNonOwnerForbidden(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&models.Book{ID: 1, Title: "Dune", OwnerID: "alice"}, nil)

	_, err := svc.Update(context.Background(), "bob", 1, func(b *models.Book) { b.Title = "Mine now" })

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestBookService_UpdateKeepsOwner(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&models.Book{ID: 1, Title: "Dune", OwnerID: "alice"}, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(b *models.Book) bool {
		return b.ID == 1 && b.OwnerID == "alice" && b.Title == "Dune Messiah"
	})).Return(nil)
	repo.On("GetByID", mock.Anything, int64(1)).Return(&models.Book{ID: 1, Title: "Dune Messiah", OwnerID: "alice"}, nil)

	b, err := svc.Update(context.Background(), "alice", 1, func(b *models.Book) {
		b.Title = "Dune Messiah"
		b.OwnerID = "bob"
		b.ID = 99
	})

	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", b.Title)
	repo.AssertExpectations(t)
}

func TestBookService_UpdateOwnISBNAllowed(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)

	book := &models.Book{ID: 1, Title: "Dune", OwnerID: "alice", ISBN: strPtr("123")}
	repo.On("GetByID", mock.Anything, int64(1)).Return(book, nil)
	repo.On("FindByISBN", mock.Anything, "123").Return(&models.Book{ID: 1}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Update(context.Background(), "alice", 1, func(b *models.Book) { b.Author = "Herbert" })

	assert.NoError(t, err)
}

func TestBookService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		actor   string
		wantErr error
	}{
		{name: "owner", actor: "alice"},
		{name: "other user", actor: "bob", wantErr: ErrForbidden},
		{name: "anonymous", actor: "", wantErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockBookRepository)
			svc := NewBookService(repo)
			repo.On("GetByID", mock.Anything, int64(1)).Return(&models.Book{ID: 1, OwnerID: "alice"}, nil)
			repo.On("Delete", mock.Anything, int64(1)).Return(nil)

			err := svc.Delete(context.Background(), tt.actor, 1)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
			repo.AssertCalled(t, "Delete", mock.Anything, int64(1))
		})
	}
}

func TestBookService_GetMissing(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)
	repo.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 42)

	assert.ErrorIs(t, err, ErrNotFound)
}
