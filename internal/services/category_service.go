package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/validator"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category for the owner. Titles are not
// required to be unique.
func (s *categoryService) CreateCategory(userID, title, description, icon string, color models.CategoryColor) (*models.Category, error) {
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category title is required")
	}
	if !validator.CategoryIcon(icon) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category icon")
	}
	if !validator.CategoryColor(string(color)) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category color")
	}

	category := &models.Category{
		Title:       title,
		Description: description,
		Icon:        icon,
		Color:       color,
		UserID:      userID,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetCategory retrieves a category by ID, enforcing the ownership guard:
// an absent row is CATEGORY_NOT_FOUND, a row owned by someone else is
// NOT_OWNER.
func (s *categoryService) GetCategory(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if category.UserID != userID {
		return nil, apperrors.ErrNotOwner
	}
	return &category, nil
}

// ListCategories returns all of the owner's categories. The set is expected
// to stay small, so there is no pagination.
func (s *categoryService) ListCategories(userID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// UpdateCategory applies a partial update to an owned category; fields not
// supplied are retained.
func (s *categoryService) UpdateCategory(userID, categoryID string, update CategoryUpdate) (*models.Category, error) {
	if _, err := s.GetCategory(userID, categoryID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Title != nil && *update.Title != "" {
		updates["title"] = *update.Title
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Icon != nil && *update.Icon != "" {
		if !validator.CategoryIcon(*update.Icon) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category icon")
		}
		updates["icon"] = *update.Icon
	}
	if update.Color != nil {
		if !validator.CategoryColor(string(*update.Color)) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category color")
		}
		updates["color"] = *update.Color
	}

	if len(updates) > 0 {
		// Owner-scoped single statement; see DeleteCategory for rationale.
		err := s.db.Transaction(func(tx *gorm.DB) error {
			return tx.Model(&models.Category{}).
				Where("id = ? AND user_id = ?", categoryID, userID).
				Updates(updates).Error
		})
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetCategory(userID, categoryID)
}

// DeleteCategory physically deletes an owned category. Transactions that
// reference it are left in place; summary reads skip categories they cannot
// resolve. The mutation statement repeats the owner predicate so a
// concurrent owner change between guard and delete cannot widen its scope.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	if _, err := s.GetCategory(userID, categoryID); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("id = ? AND user_id = ?", categoryID, userID).
			Delete(&models.Category{}).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
