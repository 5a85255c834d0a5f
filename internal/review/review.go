package review

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status models the review lifecycle. A review is created active and may
// be deactivated exactly once; deactivated is terminal.
type Status string

const (
	StatusActive      Status = "active"
	StatusDeactivated Status = "deactivated"
)

// Review represents a buyer's review of a product. Deletion is always
// logical: rows are kept for history and the status flag flips instead.
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_user_reviews"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index:idx_product_reviews"`
	Comment   string    `json:"comment" gorm:"type:text"`
	Grade     int       `json:"grade" gorm:"not null;check:grade >= 1 AND grade <= 5"`
	Status    Status    `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations (forward declarations)
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// User represents user for foreign key relationship (forward declaration)
type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string
	Role  string
}

// Product represents product for foreign key relationship (forward declaration)
type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null"`
	Name       string
	Rating     float64
	IsActive   bool
}

// Identity is the authenticated caller as supplied by the auth layer.
// The review subsystem trusts it and only inspects id and role.
type Identity struct {
	ID   uuid.UUID
	Role string
}

// Business rule outcomes. These are definitive, not transient: callers
// get them back directly with no retry.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrProductInactive  = errors.New("product not found or inactive")
	ErrCategoryInactive = errors.New("category not found or inactive")
	ErrDuplicateReview  = errors.New("a buyer can leave only one review per product")
	ErrReviewNotFound   = errors.New("review not found or inactive")

	// ErrProductMissing means the rating recompute hit a product row that
	// vanished after the caller validated it. Programming error, never a
	// user-facing condition.
	ErrProductMissing = errors.New("product row missing during rating recompute")
)

// Repository defines the interface for review data access. InTransaction
// hands the callback a repository bound to one transaction so a review
// mutation and its rating recompute commit or roll back together.
type Repository interface {
	Create(review *Review) error
	FindActiveByID(id uuid.UUID) (*Review, error)
	FindActiveByUserAndProduct(userID, productID uuid.UUID) (*Review, error)
	ListActive() ([]*Review, error)
	Deactivate(review *Review) error

	// Rating aggregate support
	AverageActiveGrade(productID uuid.UUID) (float64, error)
	UpdateProductRating(productID uuid.UUID, rating float64) error

	InTransaction(fn func(Repository) error) error
}

// ProductGateway resolves products restricted to active ones
type ProductGateway interface {
	FindActive(id uuid.UUID) (*Product, error)
}

// CategoryGateway resolves categories restricted to active ones
type CategoryGateway interface {
	ActiveExists(id uuid.UUID) (bool, error)
}

// Service defines the interface for review business logic
type Service interface {
	ListActiveReviews() ([]*Review, error)
	CreateReview(identity Identity, req *CreateReviewRequest) (*Review, error)
	DeactivateReview(identity Identity, reviewID uuid.UUID) (*Review, error)
}

// CreateReviewRequest represents review creation request
type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Comment   string    `json:"comment"`
	Grade     int       `json:"grade" binding:"required,min=1,max=5"`
}

// ReviewResponse represents review in API responses
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Comment   string    `json:"comment"`
	Grade     int       `json:"grade"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts Review to ReviewResponse
func (r *Review) ToResponse() *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Comment:   r.Comment,
		Grade:     r.Grade,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// IsActive reports whether the review still counts toward the product
// rating and the one-per-buyer constraint
func (r *Review) IsActive() bool {
	return r.Status == StatusActive
}

// IsValidGrade checks if the grade is within valid range
func (r *Review) IsValidGrade() bool {
	return r.Grade >= 1 && r.Grade <= 5
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}
