package model

const (
	StockIn  = "in_stock"
	StockLow = "low_stock"
	StockOut = "out_of_stock"
)

// ResolveStockStatus derives an item's status from its quantity against the
// minimum threshold. The quantity<=0 check takes precedence regardless of the
// threshold value.
func ResolveStockStatus(quantity, minQuantity float64) string {
	if quantity <= 0 {
		return StockOut
	}
	if quantity <= minQuantity {
		return StockLow
	}
	return StockIn
}

type InventoryItem struct {
	ID             uint    `gorm:"primaryKey"`
	ProductName    string  `gorm:"size:255;not null"`
	Category       *string `gorm:"size:100"`
	Quantity       float64 `gorm:"not null"`
	Unit           string  `gorm:"size:50;not null"`
	MinQuantity    float64 `gorm:"not null"`
	ExpirationDate *string `gorm:"size:10"`
	Supplier       *string `gorm:"size:255"`
	LastRestocked  *string `gorm:"size:10"`
	Status         string  `gorm:"size:20;default:in_stock;index"`
	CreatedAt      string  `gorm:"size:32;not null"`
	UpdatedAt      string  `gorm:"size:32;not null"`
}

func (InventoryItem) TableName() string { return "inventory" }

func (i *InventoryItem) ToAPI() map[string]any {
	return map[string]any{
		"id":             i.ID,
		"name":           i.ProductName,
		"productName":    i.ProductName,
		"category":       i.Category,
		"currentStock":   i.Quantity,
		"quantity":       i.Quantity,
		"unit":           i.Unit,
		"minStock":       i.MinQuantity,
		"minQuantity":    i.MinQuantity,
		"expiryDate":     i.ExpirationDate,
		"expirationDate": i.ExpirationDate,
		"supplier":       i.Supplier,
		"lastRestocked":  i.LastRestocked,
		"status":         i.Status,
		"createdAt":      i.CreatedAt,
		"updatedAt":      i.UpdatedAt,
	}
}
