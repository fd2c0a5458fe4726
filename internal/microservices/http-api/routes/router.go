package routes

import (
	"context"
	"net/http"
	"time"

	"bookswap/internal/config"
	"bookswap/internal/microservices/http-api/handler"
	"bookswap/internal/microservices/http-api/middleware"
	"bookswap/internal/microservices/http-api/repository"
	"bookswap/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the process-wide resources the router is built from.
type Deps struct {
	DB       *gorm.DB
	Denylist repository.TokenDenylist
	Config   *config.Config
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(deps Deps) *gin.Engine {
	cfg := deps.Config

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	if len(cfg.CORSOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORSOrigins))
	}

	// Repositories
	userRepo := repository.NewUserRepository(deps.DB)
	bookRepo := repository.NewBookRepository(deps.DB)
	exchangeRepo := repository.NewExchangeRepository(deps.DB)
	ratingRepo := repository.NewRatingRepository(deps.DB)
	recommendationRepo := repository.NewRecommendationRepository(deps.DB)

	// Services
	authService := service.NewAuthService(userRepo, deps.Denylist, cfg)
	bookService := service.NewBookService(bookRepo)
	exchangeService := service.NewExchangeService(exchangeRepo, bookRepo)
	ratingService := service.NewRatingService(ratingRepo, bookRepo)
	recommendationService := service.NewRecommendationService(recommendationRepo, bookRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, handler.CookieSettings{
		Secure:     cfg.SecureCookie,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})

	r.GET("/check-conn", checkConn(deps.DB))

	limiter := middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	authGroup := r.Group("/api", middleware.RateLimit(limiter))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/token", authHandler.Obtain)
		authGroup.POST("/token/refresh", authHandler.Refresh)
		authGroup.POST("/token/logout", authHandler.Logout)
	}

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(authService))
	{
		v1.GET("/users/me", authHandler.Me)
		handler.NewBookHandler(bookService).RegisterRoutes(v1)
		handler.NewExchangeHandler(exchangeService).RegisterRoutes(v1)
		handler.NewRatingHandler(ratingService).RegisterRoutes(v1)
		handler.NewRecommendationHandler(recommendationService).RegisterRoutes(v1)
	}

	return r
}

func checkConn(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	}
}
