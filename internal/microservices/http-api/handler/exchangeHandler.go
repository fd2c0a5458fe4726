package handler

import (
	"net/http"

	"bookswap/internal/microservices/http-api/dto"
	"bookswap/internal/microservices/http-api/middleware"
	"bookswap/internal/microservices/http-api/models"
	"bookswap/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ExchangeHandler struct {
	exchangeService service.ExchangeService
}

func NewExchangeHandler(exchangeService service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

func (h *ExchangeHandler) RegisterRoutes(router *gin.RouterGroup) {
	exchanges := router.Group("/exchanges")
	{
		exchanges.GET("", h.List)
		exchanges.POST("", h.Create)
		exchanges.GET("/:id", h.Get)
		exchanges.PUT("/:id", h.Replace)
		exchanges.PATCH("/:id", h.Patch)
		exchanges.DELETE("/:id", h.Delete)
	}
}

// List returns exchanges involving one of the caller's books
// GET /api/v1/exchanges?status=
func (h *ExchangeHandler) List(c *gin.Context) {
	page := dto.ParsePageParams(c.Request.URL.Query())

	ctx, cancel := requestContext(c)
	defer cancel()

	exchanges, total, err := h.exchangeService.List(ctx, middleware.UserID(c), c.Query("status"), page.Offset(), page.PageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]dto.ExchangeResponse, 0, len(exchanges))
	for _, e := range exchanges {
		results = append(results, dto.FromModelToExchangeResponse(e))
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(results, total, page, c.Request.URL))
}

func (h *ExchangeHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	exchange, err := h.exchangeService.Get(ctx, middleware.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToExchangeResponse(*exchange))
}

// Create proposes an exchange; status defaults to pending
// POST /api/v1/exchanges
func (h *ExchangeHandler) Create(c *gin.Context) {
	var req dto.CreateExchangeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	exchange := req.ToModel()
	created, err := h.exchangeService.Create(ctx, middleware.UserID(c), &exchange)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToExchangeResponse(*created))
}

func (h *ExchangeHandler) Replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CreateExchangeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.update(c, id, req.ApplyTo)
}

func (h *ExchangeHandler) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateExchangeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.update(c, id, req.ApplyTo)
}

func (h *ExchangeHandler) update(c *gin.Context, id int64, apply func(*models.Exchange)) {
	ctx, cancel := requestContext(c)
	defer cancel()

	exchange, err := h.exchangeService.Update(ctx, middleware.UserID(c), id, apply)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToExchangeResponse(*exchange))
}

func (h *ExchangeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.exchangeService.Delete(ctx, middleware.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
