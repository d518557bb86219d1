package model

// Settings is a singleton row (id=1), lazily created on first read.
type Settings struct {
	ID                    uint   `gorm:"primaryKey"`
	SchoolName            string `gorm:"size:255;default:''"`
	WorkStart             string `gorm:"size:10;default:''"`
	WorkEnd               string `gorm:"size:10;default:''"`
	MinBalance            int    `gorm:"default:50"`
	NotificationsEnabled  bool   `gorm:"default:true"`
	EmailNotifications    bool   `gorm:"default:true"`
	OrderNotifications    bool   `gorm:"default:true"`
	LowStockNotifications bool   `gorm:"default:true"`
	UpdatedAt             string `gorm:"size:32;not null"`
}

func (Settings) TableName() string { return "settings" }

func (s *Settings) ToAPI() map[string]any {
	return map[string]any{
		"schoolName":            s.SchoolName,
		"workStart":             s.WorkStart,
		"workEnd":               s.WorkEnd,
		"workHours":             map[string]any{"start": s.WorkStart, "end": s.WorkEnd},
		"minBalance":            s.MinBalance,
		"notificationsEnabled":  s.NotificationsEnabled,
		"emailNotifications":    s.EmailNotifications,
		"orderNotifications":    s.OrderNotifications,
		"lowStockNotifications": s.LowStockNotifications,
		"updatedAt":             s.UpdatedAt,
	}
}
