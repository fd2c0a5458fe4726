package handler

import (
	"net/http"

	"bookswap/internal/microservices/http-api/dto"
	"bookswap/internal/microservices/http-api/middleware"
	"bookswap/internal/microservices/http-api/models"
	"bookswap/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	recs := router.Group("/recommendations")
	{
		recs.GET("", h.List)
		recs.POST("", h.Create)
		recs.GET("/:id", h.Get)
		recs.PUT("/:id", h.Replace)
		recs.PATCH("/:id", h.Patch)
		recs.DELETE("/:id", h.Delete)
	}
}

// List returns recommendations the caller made or received on their books
// GET /api/v1/recommendations
func (h *RecommendationHandler) List(c *gin.Context) {
	page := dto.ParsePageParams(c.Request.URL.Query())

	ctx, cancel := requestContext(c)
	defer cancel()

	recs, total, err := h.recommendationService.List(ctx, middleware.UserID(c), page.Offset(), page.PageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]dto.RecommendationResponse, 0, len(recs))
	for _, r := range recs {
		results = append(results, dto.FromModelToRecommendationResponse(r))
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(results, total, page, c.Request.URL))
}

func (h *RecommendationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rec, err := h.recommendationService.Get(ctx, middleware.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToRecommendationResponse(*rec))
}

func (h *RecommendationHandler) Create(c *gin.Context) {
	var req dto.CreateRecommendationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rec := req.ToModel()
	created, err := h.recommendationService.Create(ctx, middleware.UserID(c), &rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToRecommendationResponse(*created))
}

func (h *RecommendationHandler) Replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CreateRecommendationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.update(c, id, req.ApplyTo)
}

func (h *RecommendationHandler) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateRecommendationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.update(c, id, req.ApplyTo)
}

func (h *RecommendationHandler) update(c *gin.Context, id int64, apply func(*models.Recommendation)) {
	ctx, cancel := requestContext(c)
	defer cancel()

	rec, err := h.recommendationService.Update(ctx, middleware.UserID(c), id, apply)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToRecommendationResponse(*rec))
}

func (h *RecommendationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.recommendationService.Delete(ctx, middleware.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
