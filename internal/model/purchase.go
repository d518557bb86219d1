package model

const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

const (
	PurchasePending   = "pending"
	PurchaseApproved  = "approved"
	PurchaseRejected  = "rejected"
	PurchaseCompleted = "completed"
)

type PurchaseRequest struct {
	ID          uint    `gorm:"primaryKey"`
	CookID      uint    `gorm:"not null;index"`
	ProductName string  `gorm:"size:255;not null"`
	Quantity    float64 `gorm:"not null"`
	Unit        string  `gorm:"size:50;not null"`
	Reason      *string `gorm:"type:text"`
	Urgency     string  `gorm:"size:20;default:medium"`
	Status      string  `gorm:"size:20;default:pending;index"`
	AdminID     *int
	AdminNotes  *string `gorm:"type:text"`
	ApprovedAt  *string `gorm:"size:32"`
	CompletedAt *string `gorm:"size:32"`
	CreatedAt   string  `gorm:"size:32;not null"`

	Cook *User `gorm:"foreignKey:CookID;constraint:OnDelete:CASCADE"`
}

func (PurchaseRequest) TableName() string { return "purchase_requests" }

func (p *PurchaseRequest) ToAPI() map[string]any {
	var cookName any
	if p.Cook != nil {
		cookName = p.Cook.FullName
	}

	return map[string]any{
		"id":          p.ID,
		"cookId":      p.CookID,
		"cookName":    cookName,
		"product":     p.ProductName,
		"productName": p.ProductName,
		"quantity":    p.Quantity,
		"unit":        p.Unit,
		"reason":      strOrEmpty(p.Reason),
		"urgency":     p.Urgency,
		"priority":    p.Urgency,
		"status":      p.Status,
		"adminId":     p.AdminID,
		"adminNotes":  p.AdminNotes,
		"approvedAt":  p.ApprovedAt,
		"completedAt": p.CompletedAt,
		"createdAt":   p.CreatedAt,
	}
}
