package handler

import (
	"context"
	"net/http"

	"bookswap/internal/microservices/http-api/models"
	"bookswap/internal/microservices/http-api/repository"
	"bookswap/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	args := m.Called(username, password, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.TokenPair, *models.User, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*service.TokenPair), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) Revoke(ctx context.Context, refreshToken string) error {
	return m.Called(refreshToken).Error(0)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockBookService mocks the BookService interface
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) List(ctx context.Context, filter repository.BookFilter, offset, limit int) ([]models.Book, int64, error) {
	args := m.Called(filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Book), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookService) Get(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) Create(ctx context.Context, actorID string, b *models.Book) (*models.Book, error) {
	args := m.Called(actorID, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) Update(ctx context.Context, actorID string, id int64, apply func(*models.Book)) (*models.Book, error) {
	args := m.Called(actorID, id, apply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) Delete(ctx context.Context, actorID string, id int64) error {
	return m.Called(actorID, id).Error(0)
}

// MockRatingService mocks the RatingService interface
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) List(ctx context.Context, filter repository.RatingFilter, offset, limit int) ([]models.Rating, int64, error) {
	args := m.Called(filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Rating), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingService) Get(ctx context.Context, id int64) (*models.Rating, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingService) Create(ctx context.Context, actorID string, r *models.Rating) (*models.Rating, error) {
	args := m.Called(actorID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingService) Update(ctx context.Context, actorID string, id int64, apply func(*models.Rating)) (*models.Rating, error) {
	args := m.Called(actorID, id, apply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingService) Delete(ctx context.Context, actorID string, id int64) error {
	return m.Called(actorID, id).Error(0)
}

// MockExchangeService mocks the ExchangeService interface
type MockExchangeService struct {
	mock.Mock
}

func (m *MockExchangeService) List(ctx context.Context, actorID, status string, offset, limit int) ([]models.Exchange, int64, error) {
	args := m.Called(actorID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Exchange), args.Get(1).(int64), args.Error(2)
}

func (m *MockExchangeService) Get(ctx context.Context, actorID string, id int64) (*models.Exchange, error) {
	args := m.Called(actorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exchange), args.Error(1)
}

func (m *MockExchangeService) Create(ctx context.Context, actorID string, e *models.Exchange) (*models.Exchange, error) {
	args := m.Called(actorID, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exchange), args.Error(1)
}

func (m *MockExchangeService) Update(ctx context.Context, actorID string, id int64, apply func(*models.Exchange)) (*models.Exchange, error) {
	args := m.Called(actorID, id, apply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exchange), args.Error(1)
}

func (m *MockExchangeService) Delete(ctx context.Context, actorID string, id int64) error {
	return m.Called(actorID, id).Error(0)
}

// MockRecommendationService mocks the RecommendationService interface
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) List(ctx context.Context, actorID string, offset, limit int) ([]models.Recommendation, int64, error) {
	args := m.Called(actorID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Recommendation), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecommendationService) Get(ctx context.Context, actorID string, id int64) (*models.Recommendation, error) {
	args := m.Called(actorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recommendation), args.Error(1)
}

func (m *MockRecommendationService) Create(ctx context.Context, actorID string, rec *models.Recommendation) (*models.Recommendation, error) {
	args := m.Called(actorID, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recommendation), args.Error(1)
}

func (m *MockRecommendationService) Update(ctx context.Context, actorID string, id int64, apply func(*models.Recommendation)) (*models.Recommendation, error) {
	args := m.Called(actorID, id, apply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recommendation), args.Error(1)
}

func (m *MockRecommendationService) Delete(ctx context.Context, actorID string, id int64) error {
	return m.Called(actorID, id).Error(0)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser stands in for AuthMiddleware.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}
