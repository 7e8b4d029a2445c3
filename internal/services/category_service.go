package services

import (
	"errors"
	"regexp"

	"gorm.io/gorm"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/apperrors"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"
)

// colorRegex matches the display color format: '#' followed by exactly six
// hex digits.
var colorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

func validateCategoryFields(name string, kind models.CategoryKind, color string) error {
	if name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if len(name) > 100 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category name must be at most 100 characters")
	}
	if !kind.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category kind must be income or expense")
	}
	if !colorRegex.MatchString(color) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "color must be in #RRGGBB format")
	}
	return nil
}

// CreateCategory creates a new category. (name, kind) is treated as a
// natural key: a second category with the same pair is rejected.
func (s *categoryService) CreateCategory(name string, kind models.CategoryKind, color string) (*models.Category, error) {
	if err := validateCategoryFields(name, kind, color); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("name = ? AND kind = ?", name, kind).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		Name:  name,
		Kind:  kind,
		Color: color,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return category, nil
}

// GetCategories retrieves all categories in stable name order.
func (s *categoryService) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return categories, nil
}

// GetCategoriesByKind retrieves all categories of one kind in name order.
func (s *categoryService) GetCategoriesByKind(kind models.CategoryKind) ([]models.Category, error) {
	if !kind.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category kind must be income or expense")
	}

	var categories []models.Category
	if err := s.db.Where("kind = ?", kind).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &category, nil
}

// UpdateCategory replaces the mutable fields of an existing category,
// re-validating the same constraints as create.
func (s *categoryService) UpdateCategory(id, name string, kind models.CategoryKind, color string) (*models.Category, error) {
	if err := validateCategoryFields(name, kind, color); err != nil {
		return nil, err
	}

	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("name = ? AND kind = ? AND id <> ?", name, kind, id).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	updates := map[string]interface{}{
		"name":  name,
		"kind":  kind,
		"color": color,
	}
	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return category, nil
}

// DeleteCategory removes a category. The delete is refused while any
// transaction still references it: the reference count is an early check
// with a precise error, the FK RESTRICT constraint is the guarantee that
// holds even against a concurrent insert.
func (s *categoryService) DeleteCategory(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		category := &models.Category{}
		if err := tx.Where("id = ?", id).First(category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCategoryNotFound
			}
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		var refs int64
		if err := tx.Model(&models.Transaction{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if refs > 0 {
			return apperrors.ErrCategoryInUse
		}

		if err := tx.Delete(category).Error; err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return apperrors.ErrCategoryInUse
			}
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
}

// CountCategoriesByKind counts categories of one kind.
func (s *categoryService) CountCategoriesByKind(kind models.CategoryKind) (int64, error) {
	if !kind.Valid() {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "category kind must be income or expense")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("kind = ?", kind).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return count, nil
}
