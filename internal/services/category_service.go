package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/Rodeztrading/Dashboard/internal/errors"
	"github.com/Rodeztrading/Dashboard/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// defaultCategories is the closed top-level set seeded once per user.
type seedSubcategory struct {
	name string
}

type seedCategory struct {
	name          string
	txType        models.TransactionType
	icon          string
	color         string
	subcategories []seedSubcategory
}

var defaultCategories = []seedCategory{
	{
		name: "Facturas", txType: models.TransactionTypeExpense, icon: "FileText", color: "#FF5252",
		subcategories: []seedSubcategory{
			{"Servicios Públicos"}, {"Arriendo"}, {"Internet"}, {"Celular"}, {"Tarjeta de Crédito"},
		},
	},
	{
		name: "Inversión", txType: models.TransactionTypeExpense, icon: "TrendingUp", color: "#4CAF50",
		subcategories: []seedSubcategory{
			{"Trading"}, {"Wink"}, {"Propiedad"},
		},
	},
	{
		name: "Gastos Diarios", txType: models.TransactionTypeExpense, icon: "ShoppingCart", color: "#FFC107",
		subcategories: []seedSubcategory{
			{"Comida"}, {"Transporte"}, {"Ocio"},
		},
	},
	{
		name: "Ahorro", txType: models.TransactionTypeExpense, icon: "PiggyBank", color: "#2196F3",
		subcategories: []seedSubcategory{
			{"General"}, {"Fondo de Emergencia"},
		},
	},
	{
		name: "Ingresos", txType: models.TransactionTypeIncome, icon: "DollarSign", color: "#8BC34A",
		subcategories: []seedSubcategory{
			{"Salario"}, {"Ventas"},
		},
	},
}

// GetUserCategories returns all categories with their subcategories,
// seeding the default set on the first empty read.
func (s *categoryService) GetUserCategories(userID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).Where("user_id = ?", userID).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(categories) > 0 {
		return categories, nil
	}

	if err := s.seedDefaults(userID); err != nil {
		return nil, err
	}

	if err := s.db.Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).Where("user_id = ?", userID).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

func (s *categoryService) seedDefaults(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, seed := range defaultCategories {
			category := &models.Category{
				UserID:    userID,
				Name:      seed.name,
				Type:      seed.txType,
				Icon:      seed.icon,
				Color:     seed.color,
				IsDefault: true,
			}
			if err := tx.Create(category).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			for i, sub := range seed.subcategories {
				subcategory := &models.Subcategory{
					CategoryID: category.ID,
					Name:       sub.name,
					IsDefault:  true,
					Position:   i,
				}
				if err := tx.Create(subcategory).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			}
		}
		return nil
	})
}

// GetCategoryByID retrieves a category (with subcategories) for a user.
func (s *categoryService) GetCategoryByID(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Subcategories").
		Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory renames or recolors a category. The type and the set
// of top-level categories stay fixed.
func (s *categoryService) UpdateCategory(userID, categoryID uint, name, color string) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if color != "" {
		updates["color"] = color
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// AddSubcategory appends a subcategory to a category the user owns.
func (s *categoryService) AddSubcategory(userID, categoryID uint, name string) (*models.Subcategory, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "subcategory name is required")
	}

	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	subcategory := &models.Subcategory{
		CategoryID: category.ID,
		Name:       name,
		Position:   len(category.Subcategories),
	}
	if err := s.db.Create(subcategory).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return subcategory, nil
}

// RemoveSubcategory deletes a subcategory from a category the user owns.
func (s *categoryService) RemoveSubcategory(userID, categoryID, subcategoryID uint) error {
	if _, err := s.GetCategoryByID(userID, categoryID); err != nil {
		return err
	}

	result := s.db.Where("id = ? AND category_id = ?", subcategoryID, categoryID).
		Delete(&models.Subcategory{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrSubcategoryNotFound
	}
	return nil
}
