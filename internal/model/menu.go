package model

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
)

type MenuItem struct {
	ID          uint    `gorm:"primaryKey"`
	Date        string  `gorm:"size:10;not null;index"` // YYYY-MM-DD
	MealType    string  `gorm:"size:20;not null;index"`
	Name        string  `gorm:"size:255;not null"`
	Description *string `gorm:"type:text"`
	Price       float64 `gorm:"not null"`
	Calories    *int
	Allergens   *string `gorm:"type:text"` // JSON list
	IsAvailable bool    `gorm:"default:true;index"`
	ImageURL    *string `gorm:"type:text"`
	CreatedAt   string  `gorm:"size:32;not null"`
}

func (MenuItem) TableName() string { return "menu_items" }

func (m *MenuItem) ToAPI() map[string]any {
	return map[string]any{
		"id":          m.ID,
		"date":        m.Date,
		"type":        m.MealType,
		"name":        m.Name,
		"description": strOrEmpty(m.Description),
		"price":       m.Price,
		"calories":    m.Calories,
		"allergens":   ParseStringList(m.Allergens),
		"isAvailable": m.IsAvailable,
		"imageUrl":    m.ImageURL,
		"createdAt":   m.CreatedAt,
	}
}
