package review

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for review operations
type Handler struct {
	service Service
}

// NewHandler creates a new review handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// identityFromContext builds the caller identity placed there by the auth
// middleware
func identityFromContext(c *gin.Context) (Identity, bool) {
	idValue, exists := c.Get("user_id")
	if !exists {
		return Identity{}, false
	}
	userID, ok := idValue.(uuid.UUID)
	if !ok {
		return Identity{}, false
	}
	return Identity{ID: userID, Role: c.GetString("user_role")}, true
}

// ListReviews handles listing all active reviews
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.service.ListActiveReviews()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	responses := make([]*ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = review.ToResponse()
	}

	c.JSON(http.StatusOK, responses)
}

// CreateReview handles review creation (buyer only)
func (h *Handler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	review, err := h.service.CreateReview(identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Buyer role required"})
		case errors.Is(err, ErrProductInactive):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found or inactive"})
		case errors.Is(err, ErrCategoryInactive):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found or inactive"})
		case errors.Is(err, ErrDuplicateReview):
			c.JSON(http.StatusConflict, gin.H{"error": "A buyer can leave only one review per product"})
		case strings.HasPrefix(err.Error(), "grade"):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, review.ToResponse())
}

// DeactivateReview handles soft deletion of a review (admin only)
func (h *Handler) DeactivateReview(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	review, err := h.service.DeactivateReview(identity, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		case errors.Is(err, ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found or inactive"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate review"})
		}
		return
	}

	c.JSON(http.StatusOK, review.ToResponse())
}

// RegisterRoutes registers all review routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	reviews := router.Group("/reviews")
	{
		// Review browsing is public
		reviews.GET("", h.ListReviews)

		protected := reviews.Group("")
		protected.Use(authMiddleware)
		{
			protected.POST("", h.CreateReview)
			protected.DELETE("/:id", h.DeactivateReview)
		}
	}
}
