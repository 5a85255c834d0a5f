package product

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/marketplace-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for product operations
type Handler struct {
	service Service
}

// NewHandler creates a new product handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// CreateProduct handles product creation
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Extract user ID from JWT token
	sellerID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	role := c.GetString("user_role")

	product, err := h.service.CreateProduct(sellerID, role, &req)
	if err != nil {
		if strings.Contains(err.Error(), "permission denied") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Seller role required"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}

	c.JSON(http.StatusCreated, product.ToResponse())
}

// GetProduct handles fetching a single active product
func (h *Handler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.service.GetProduct(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found or inactive"})
		return
	}

	c.JSON(http.StatusOK, product.ToResponse())
}

// ListProducts handles listing active products with pagination
func (h *Handler) ListProducts(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	limit := 20
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	products, total, err := h.service.ListProducts(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	response := BuildPaginationResponse(products, total, page, limit)
	c.JSON(http.StatusOK, response)
}

// DeactivateProduct handles soft deletion of a product (admin only)
func (h *Handler) DeactivateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	role := c.GetString("user_role")

	err = h.service.DeactivateProduct(role, productID)
	if err != nil {
		if strings.Contains(err.Error(), "permission denied") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		} else if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate product"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deactivated successfully"})
}

// RegisterRoutes registers all product routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	products := router.Group("/products")
	{
		// Catalogue browsing is public
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)

		protected := products.Group("")
		protected.Use(authMiddleware)
		{
			protected.POST("", h.CreateProduct)
			protected.DELETE("/:id", h.DeactivateProduct)
		}
	}
}
