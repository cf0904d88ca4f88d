package models

// Category represents a top-level transaction category. The top-level
// set is seeded once per user and effectively closed; users edit names
// and colors and manage subcategories instead of creating new roots.
type Category struct {
	Base
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	Name      string          `gorm:"not null" json:"name"`
	Type      TransactionType `gorm:"not null" json:"type"`
	Icon      string          `json:"icon,omitempty"`
	Color     string          `json:"color,omitempty"`
	IsDefault bool            `gorm:"default:false" json:"is_default"`

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
	Transactions  []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}

// Subcategory is a named child of a category.
type Subcategory struct {
	Base
	CategoryID uint   `gorm:"not null;index" json:"category_id"`
	Name       string `gorm:"not null" json:"name"`
	IsDefault  bool   `gorm:"default:false" json:"is_default"`
	Position   int    `gorm:"default:0" json:"position"`
}
