package category

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products. Deactivating a category hides its products
// from review creation without touching the rows.
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Description string    `json:"description" gorm:"size:500"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations - loaded explicitly when needed
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

// Product represents the product entity (forward declaration for association)
type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string
}

// Repository defines the interface for category data access
type Repository interface {
	Create(category *Category) error
	FindActiveByID(id uuid.UUID) (*Category, error)
	ListActive() ([]*Category, error)
	Deactivate(id uuid.UUID) error
}

// Service defines the interface for category business logic
type Service interface {
	CreateCategory(role, name, description string) (*Category, error)
	GetActiveCategory(id uuid.UUID) (*Category, error)
	ListCategories() ([]*Category, error)
	DeactivateCategory(role string, id uuid.UUID) error
}

// CreateCategoryRequest represents category creation request
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// CategoryResponse represents category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts Category to CategoryResponse
func (c *Category) ToResponse() *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}
