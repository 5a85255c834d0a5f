package product

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a listed item. Rating is a cached aggregate owned by
// the review subsystem and must never be written by anything else.
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SellerID    uuid.UUID `json:"seller_id" gorm:"type:uuid;not null;index:idx_seller_products"`
	CategoryID  uuid.UUID `json:"category_id" gorm:"type:uuid;not null;index:idx_category_products"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	Description string    `json:"description" gorm:"size:500"`
	Price       float64   `json:"price" gorm:"not null"`
	ImageURL    string    `json:"image_url" gorm:"size:2048"`
	Stock       int       `json:"stock" gorm:"not null;default:0"`
	Rating      float64   `json:"rating" gorm:"not null;default:0"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true;index"`

	// Optional source page for async metadata enrichment
	SourceURL      string    `json:"source_url,omitempty" gorm:"size:2048"`
	MetadataStatus string    `json:"metadata_status" gorm:"size:20;default:'none'"`
	RetryCount     int       `json:"retry_count" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Seller   *User    `json:"seller,omitempty" gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Reviews  []Review `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

// User represents user for foreign key relationship (forward declaration)
type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string
	Role  string
}

// Category represents category for foreign key relationship (forward declaration)
type Category struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string
	IsActive bool
}

// Review represents review for foreign key relationship (forward declaration)
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Grade     int
	Status    string
}

// Metadata status constants
const (
	MetadataStatusNone    = "none"
	MetadataStatusPending = "pending"
	MetadataStatusSuccess = "success"
	MetadataStatusFailed  = "failed"
)

// Repository defines the interface for product data access
type Repository interface {
	Create(product *Product) error
	FindByID(id uuid.UUID) (*Product, error)
	FindActiveByID(id uuid.UUID) (*Product, error)
	FindActive(offset, limit int) ([]*Product, error)
	CountActive() (int64, error)
	Update(product *Product) error
	Deactivate(id uuid.UUID) error

	// Enrichment-specific queries
	FindFailedMetadata(maxRetries int) ([]*Product, error)
}

// Service defines the interface for product business logic
type Service interface {
	CreateProduct(sellerID uuid.UUID, role string, req *CreateProductRequest) (*Product, error)
	GetProduct(id uuid.UUID) (*Product, error)
	ListProducts(page, limit int) ([]*Product, int64, error)
	DeactivateProduct(role string, id uuid.UUID) error

	// Background processing
	EnrichMetadata(productID uuid.UUID) error
	RetryFailedEnrichment() error
}

// MetadataExtractor interface for source page extraction
type MetadataExtractor interface {
	Extract(url string) (*ExtractedMetadata, error)
}

// ExtractedMetadata represents metadata pulled from a product source page
type ExtractedMetadata struct {
	Title       string
	Description string
	ImageURL    string
	Confidence  float64
}

// CreateProductRequest represents product creation request
type CreateProductRequest struct {
	Name        string    `json:"name" binding:"required,max=100"`
	Description string    `json:"description" binding:"max=500"`
	Price       float64   `json:"price" binding:"required,gt=0"`
	ImageURL    string    `json:"image_url" binding:"omitempty,url"`
	Stock       int       `json:"stock" binding:"gte=0"`
	CategoryID  uuid.UUID `json:"category_id" binding:"required"`
	SourceURL   string    `json:"source_url" binding:"omitempty,url"`
}

// ProductResponse represents product in API responses
type ProductResponse struct {
	ID             uuid.UUID `json:"id"`
	SellerID       uuid.UUID `json:"seller_id"`
	CategoryID     uuid.UUID `json:"category_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	ImageURL       string    `json:"image_url"`
	Stock          int       `json:"stock"`
	Rating         float64   `json:"rating"`
	IsActive       bool      `json:"is_active"`
	MetadataStatus string    `json:"metadata_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProductListResponse represents paginated product list
type ProductListResponse struct {
	Products []*ProductResponse `json:"products"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
	Pages    int                `json:"pages"`
}

// ToResponse converts Product to ProductResponse
func (p *Product) ToResponse() *ProductResponse {
	return &ProductResponse{
		ID:             p.ID,
		SellerID:       p.SellerID,
		CategoryID:     p.CategoryID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		ImageURL:       p.ImageURL,
		Stock:          p.Stock,
		Rating:         p.Rating,
		IsActive:       p.IsActive,
		MetadataStatus: p.MetadataStatus,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// IsOwnedBy checks if the product belongs to the specified seller
func (p *Product) IsOwnedBy(sellerID uuid.UUID) bool {
	return p.SellerID == sellerID
}

// NeedsEnrichment checks if the product still wants source page metadata
func (p *Product) NeedsEnrichment() bool {
	if p.SourceURL == "" {
		return false
	}
	return p.MetadataStatus == MetadataStatusPending ||
		(p.MetadataStatus == MetadataStatusFailed && p.RetryCount < 3)
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}
