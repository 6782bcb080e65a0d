package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "minhasfinancas/internal/errors"
	"minhasfinancas/internal/models"
	"minhasfinancas/internal/watch"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, hub *watch.Hub) CategoryServicer {
	return &categoryService{db: db, hub: hub}
}

// ListCategories retrieves all active categories ordered by name.
func (s *categoryService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("active = ?", true).Order("name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return categories, nil
}

// ListCategoriesByKind retrieves active categories of one kind ordered by name.
func (s *categoryService) ListCategoriesByKind(kind models.CategoryKind) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("kind = ? AND active = ?", kind, true).
		Order("name").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID.
func (s *categoryService) GetCategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &category, nil
}

// CreateCategory creates a new category of the given kind.
func (s *categoryService) CreateCategory(name string, kind models.CategoryKind, icon, color string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if kind != models.CategoryKindReceita && kind != models.CategoryKindDespesa {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be RECEITA or DESPESA")
	}

	category := &models.Category{
		Name:   strings.TrimSpace(name),
		Kind:   kind,
		Icon:   icon,
		Color:  color,
		Active: true,
	}
	if category.Icon == "" {
		category.Icon = "category"
	}
	if category.Color == "" {
		category.Color = "#9E9E9E"
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	s.hub.Notify(watch.TableCategories)
	return category, nil
}

// UpdateCategory updates a category's display fields. The kind is fixed at
// creation: events already classified under it rely on the sign it implies.
func (s *categoryService) UpdateCategory(id uint, name, icon, color string, active *bool) (*models.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if strings.TrimSpace(name) != "" {
		updates["name"] = strings.TrimSpace(name)
	}
	if icon != "" {
		updates["icon"] = icon
	}
	if color != "" {
		updates["color"] = color
	}
	if active != nil {
		updates["active"] = *active
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		s.hub.Notify(watch.TableCategories)
	}

	return category, nil
}

// DeleteCategory hard-deletes a category. The foreign key sets the category
// reference of existing events to NULL; no event is deleted.
func (s *categoryService) DeleteCategory(id uint) error {
	result := s.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	s.hub.Notify(watch.TableCategories, watch.TableEvents)
	return nil
}
