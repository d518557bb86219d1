package model

const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderReceived  = "received"
	OrderCancelled = "cancelled"
)

const (
	PaymentOneTime      = "one_time"
	PaymentSubscription = "subscription"
)

type Order struct {
	ID                  uint    `gorm:"primaryKey"`
	StudentID           uint    `gorm:"not null;index"`
	MenuItemID          uint    `gorm:"not null"`
	OrderDate           string  `gorm:"size:10;not null;index"`
	MealType            string  `gorm:"size:20;not null"`
	Quantity            int     `gorm:"default:1"`
	TotalPrice          float64 `gorm:"not null"`
	Status              string  `gorm:"size:20;default:pending;index"`
	PaymentType         string  `gorm:"size:20;not null"`
	SubscriptionID      *int
	SpecialInstructions *string `gorm:"type:text"`
	ReceivedAt          *string `gorm:"size:32"`
	CreatedAt           string  `gorm:"size:32;not null"`

	Student  *User     `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// ToAPI denormalizes the joined student and menu names for read convenience.
// The dishId/dishName/className/total keys are aliases kept for the old
// cook-panel templates.
func (o *Order) ToAPI() map[string]any {
	var studentName, studentClass, menuName any
	if o.Student != nil {
		studentName = o.Student.FullName
		studentClass = o.Student.Class
	}
	if o.MenuItem != nil {
		menuName = o.MenuItem.Name
	}

	return map[string]any{
		"id":                  o.ID,
		"studentId":           o.StudentID,
		"studentName":         studentName,
		"studentClass":        studentClass,
		"className":           studentClass,
		"menuId":              o.MenuItemID,
		"menuName":            menuName,
		"dishId":              o.MenuItemID,
		"dishName":            menuName,
		"type":                o.MealType,
		"quantity":            o.Quantity,
		"price":               o.TotalPrice,
		"total":               o.TotalPrice,
		"status":              o.Status,
		"paymentType":         o.PaymentType,
		"subscriptionId":      o.SubscriptionID,
		"specialInstructions": o.SpecialInstructions,
		"receivedAt":          o.ReceivedAt,
		"createdAt":           o.CreatedAt,
		"date":                o.OrderDate,
	}
}
