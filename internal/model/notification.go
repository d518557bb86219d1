package model

const (
	NotifOrder   = "order"
	NotifPayment = "payment"
	NotifSystem  = "system"
	NotifWarning = "warning"
	NotifInfo    = "info"
)

type Notification struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"not null;index"`
	Type      string  `gorm:"size:20;not null"`
	Title     string  `gorm:"size:255;not null"`
	Message   string  `gorm:"type:text;not null"`
	IsRead    bool    `gorm:"default:false;index"`
	Link      *string `gorm:"size:255"`
	CreatedAt string  `gorm:"size:32;not null"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Notification) TableName() string { return "notifications" }

func (n *Notification) ToAPI() map[string]any {
	return map[string]any{
		"id":        n.ID,
		"userId":    n.UserID,
		"type":      n.Type,
		"title":     n.Title,
		"message":   n.Message,
		"isRead":    n.IsRead,
		"read":      n.IsRead,
		"link":      n.Link,
		"createdAt": n.CreatedAt,
		"date":      n.CreatedAt,
	}
}
