package model

const (
	PayMethodCard     = "card"
	PayMethodSBP      = "sbp"
	PayMethodCash     = "cash"
	PayMethodTransfer = "transfer"
)

const (
	PayPending   = "pending"
	PayCompleted = "completed"
	PayFailed    = "failed"
	PayRefunded  = "refunded"
)

type Payment struct {
	ID            uint    `gorm:"primaryKey"`
	UserID        uint    `gorm:"not null;index"`
	Amount        float64 `gorm:"not null"`
	PaymentMethod string  `gorm:"size:20;not null"`
	TransactionID *string `gorm:"size:64;uniqueIndex"`
	Status        string  `gorm:"size:20;default:pending;index"`
	Description   *string `gorm:"type:text"`
	Metadata      *string `gorm:"type:text"`
	CreatedAt     string  `gorm:"size:32;not null"`
	CompletedAt   *string `gorm:"size:32"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) ToAPI() map[string]any {
	return map[string]any{
		"id":            p.ID,
		"userId":        p.UserID,
		"amount":        p.Amount,
		"paymentMethod": p.PaymentMethod,
		"transactionId": p.TransactionID,
		"status":        p.Status,
		"description":   p.Description,
		"createdAt":     p.CreatedAt,
		"completedAt":   p.CompletedAt,
	}
}
