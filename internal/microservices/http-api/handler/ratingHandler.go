package handler

import (
	"net/http"
	"strconv"

	"bookswap/internal/microservices/http-api/dto"
	"bookswap/internal/microservices/http-api/middleware"
	"bookswap/internal/microservices/http-api/models"
	"bookswap/internal/microservices/http-api/repository"
	"bookswap/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// RegisterRoutes registers rating-related routes
func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup) {
	ratings := router.Group("/ratings")
	{
		ratings.GET("", h.List)
		ratings.POST("", h.Create)
		ratings.GET("/:id", h.Get)
		ratings.PUT("/:id", h.Replace)
		ratings.PATCH("/:id", h.Patch)
		ratings.DELETE("/:id", h.Delete)
	}
}

// List returns every rating, optionally for one book
// GET /api/v1/ratings?book_id=
func (h *RatingHandler) List(c *gin.Context) {
	page := dto.ParsePageParams(c.Request.URL.Query())

	var filter repository.RatingFilter
	if v := c.Query("book_id"); v != "" {
		bookID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
			return
		}
		filter.BookID = bookID
	}
	if v := c.Query("score"); v != "" {
		score, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid score"})
			return
		}
		filter.Score = score
	}
	filter.Search = c.Query("search")

	ctx, cancel := requestContext(c)
	defer cancel()

	ratings, total, err := h.ratingService.List(ctx, filter, page.Offset(), page.PageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]dto.RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		results = append(results, dto.FromModelToRatingResponse(r))
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(results, total, page, c.Request.URL))
}

func (h *RatingHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rating, err := h.ratingService.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToRatingResponse(*rating))
}

// Create rates a book as the caller; one rating per book per user
// POST /api/v1/ratings
func (h *RatingHandler) Create(c *gin.Context) {
	var req dto.CreateRatingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rating := req.ToModel()
	created, err := h.ratingService.Create(ctx, middleware.UserID(c), &rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToRatingResponse(*created))
}

func (h *RatingHandler) Replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CreateRatingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.update(c, id, req.ApplyTo)
}

func (h *RatingHandler) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateRatingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.update(c, id, req.ApplyTo)
}

func (h *RatingHandler) update(c *gin.Context, id int64, apply func(*models.Rating)) {
	ctx, cancel := requestContext(c)
	defer cancel()

	rating, err := h.ratingService.Update(ctx, middleware.UserID(c), id, apply)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToRatingResponse(*rating))
}

// Delete removes the caller's own rating
// DELETE /api/v1/ratings/:id
func (h *RatingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.ratingService.Delete(ctx, middleware.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
