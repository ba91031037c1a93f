package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/northlake-labs/product-service/internal/domain"
	"github.com/northlake-labs/product-service/internal/service"
)

const (
	serviceName = "product-service"

	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	// maxPage keeps skip = (page-1)*limit well inside int64 at any limit.
	maxPage = 1_000_000_000

	defaultSortField = "createdAt"
)

// sortableFields whitelists the fields a listing may be ordered by.
var sortableFields = map[string]bool{
	"name":      true,
	"price":     true,
	"quantity":  true,
	"category":  true,
	"createdAt": true,
	"updatedAt": true,
}

type ProductHandler struct {
	productService *service.ProductService
	logger         *zap.Logger
}

func NewProductHandler(productService *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

func (h *ProductHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"service": serviceName,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, limit := parsePagination(c)
	field, desc := parseSort(c.Query("sort"))

	filter := domain.ListFilter{
		Search:    strings.TrimSpace(c.Query("q")),
		SortField: field,
		SortDesc:  desc,
		Skip:      int64(page-1) * int64(limit),
		Limit:     int64(limit),
	}

	items, total, err := h.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": pageCount(total, limit),
		},
	})
}

func (h *ProductHandler) ReplaceProduct(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	product, err := h.productService.ReplaceProduct(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) PatchProduct(c *gin.Context) {
	// A zero-byte body is an empty patch: nothing to merge, updatedAt
	// still refreshes.
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	product, err := h.productService.PatchProduct(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := h.productService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "product deleted",
		"id":      product.ID.Hex(),
	})
}

// respondError translates the domain error taxonomy into HTTP responses.
// Anything outside the taxonomy is deferred to the terminal error middleware.
func (h *ProductHandler) respondError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Error()})
	case errors.Is(err, domain.ErrInvalidProductID):
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
	default:
		_ = c.Error(err)
	}
}

// parsePagination reads page and limit with forgiving coercion: junk or
// out-of-range pages floor to 1, limit clamps to [1, maxLimit].
func parsePagination(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil || page < 1 {
		page = defaultPage
	}
	if page > maxPage {
		page = maxPage
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit
}

// parseSort accepts "field" for ascending and "-field" for descending,
// falling back to newest-first for unknown or empty fields.
func parseSort(param string) (field string, desc bool) {
	field = strings.TrimSpace(param)
	if strings.HasPrefix(field, "-") {
		desc = true
		field = strings.TrimPrefix(field, "-")
	}
	if !sortableFields[field] {
		return defaultSortField, true
	}
	return field, desc
}

func pageCount(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
