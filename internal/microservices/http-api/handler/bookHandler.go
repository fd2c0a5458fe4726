package handler

import (
	"net/http"

	"bookswap/internal/microservices/http-api/dto"
	"bookswap/internal/microservices/http-api/middleware"
	"bookswap/internal/microservices/http-api/models"
	"bookswap/internal/microservices/http-api/repository"
	"bookswap/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// RegisterRoutes registers book routes; the group is already authenticated
func (h *BookHandler) RegisterRoutes(router *gin.RouterGroup) {
	books := router.Group("/books")
	{
		books.GET("", h.List)
		books.POST("", h.Create)
		books.GET("/:id", h.Get)
		books.PUT("/:id", h.Replace)
		books.PATCH("/:id", h.Patch)
		books.DELETE("/:id", h.Delete)
	}
}

// List returns a page of books
// GET /api/v1/books?search=&owner=&author=&page=&page_size=
func (h *BookHandler) List(c *gin.Context) {
	page := dto.ParsePageParams(c.Request.URL.Query())
	filter := repository.BookFilter{
		Search:  c.Query("search"),
		OwnerID: c.Query("owner"),
		Author:  c.Query("author"),
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	books, total, err := h.bookService.List(ctx, filter, page.Offset(), page.PageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		results = append(results, dto.FromModelToBookResponse(b))
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(results, total, page, c.Request.URL))
}

// Get returns one book
// GET /api/v1/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	book, err := h.bookService.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToBookResponse(*book))
}

// Create adds a book owned by the caller
// POST /api/v1/books
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	book := req.ToModel()
	created, err := h.bookService.Create(ctx, middleware.UserID(c), &book)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToBookResponse(*created))
}

// Replace overwrites every writable field
// PUT /api/v1/books/:id
func (h *BookHandler) Replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CreateBookDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.update(c, id, req.ApplyTo)
}

// Patch updates only the fields sent
// PATCH /api/v1/books/:id
func (h *BookHandler) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateBookDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.update(c, id, req.ApplyTo)
}

func (h *BookHandler) update(c *gin.Context, id int64, apply func(*models.Book)) {
	ctx, cancel := requestContext(c)
	defer cancel()

	book, err := h.bookService.Update(ctx, middleware.UserID(c), id, apply)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToBookResponse(*book))
}

// Delete removes a book the caller owns
// DELETE /api/v1/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.bookService.Delete(ctx, middleware.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
