package category

import (
	"errors"
	"time"

	"github.com/dustin/marketplace-backend/pkg/logger"
	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates a new category service
func NewService(repo Repository, log *logger.Logger) Service {
	return &service{
		repo:   repo,
		logger: log.WithComponent("category-service"),
	}
}

func (s *service) CreateCategory(role, name, description string) (*Category, error) {
	s.logger.Info("Creating category '" + name + "' requested by role " + role)

	// Only admins manage the catalogue taxonomy
	if role != "admin" {
		s.logger.Info("Category creation denied for role " + role)
		return nil, errors.New("permission denied")
	}

	category := &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Create(category); err != nil {
		s.logger.Error("Failed to create category '" + name + "': " + err.Error())
		return nil, err
	}

	s.logger.Info("Category created successfully: " + category.ID.String() + " '" + name + "'")

	return category, nil
}

func (s *service) GetActiveCategory(id uuid.UUID) (*Category, error) {
	return s.repo.FindActiveByID(id)
}

func (s *service) ListCategories() ([]*Category, error) {
	return s.repo.ListActive()
}

func (s *service) DeactivateCategory(role string, id uuid.UUID) error {
	s.logger.Info("Deactivating category " + id.String() + " requested by role " + role)

	if role != "admin" {
		s.logger.Info("Category deactivation denied for role " + role)
		return errors.New("permission denied")
	}

	if err := s.repo.Deactivate(id); err != nil {
		s.logger.Error("Failed to deactivate category " + id.String() + ": " + err.Error())
		return err
	}

	s.logger.Info("Category deactivated: " + id.String())

	return nil
}
