package model

const (
	RoleStudent = "student"
	RoleCook    = "cook"
	RoleAdmin   = "admin"
)

type User struct {
	ID              uint    `gorm:"primaryKey"`
	Email           string  `gorm:"size:255;uniqueIndex;not null"`
	Login           string  `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash    string  `gorm:"size:255;not null"`
	FullName        string  `gorm:"size:255;not null"`
	Role            string  `gorm:"size:20;not null;index"`
	Class           *string `gorm:"size:20"`
	Allergies       *string `gorm:"type:text"` // JSON list
	Preferences     *string `gorm:"type:text"`
	Balance         float64 `gorm:"default:0"`
	Specialization  *string `gorm:"size:255"`
	Position        *string `gorm:"size:255"`
	PermissionLevel *string `gorm:"size:50"`
	IsActive        bool    `gorm:"default:true"`
	CreatedAt       string  `gorm:"size:32;not null"`
	UpdatedAt       string  `gorm:"size:32;not null"`
}

func (User) TableName() string { return "users" }

// ToAPI shapes the user the way the front-end expects: camelCase keys, with
// the backward-compatible `active` alias and no password hash.
func (u *User) ToAPI() map[string]any {
	return map[string]any{
		"id":              u.ID,
		"name":            u.FullName,
		"email":           u.Email,
		"login":           u.Login,
		"role":            u.Role,
		"class":           u.Class,
		"allergies":       ParseStringList(u.Allergies),
		"preferences":     strOrEmpty(u.Preferences),
		"balance":         u.Balance,
		"specialization":  u.Specialization,
		"position":        u.Position,
		"permissionLevel": u.PermissionLevel,
		"isActive":        u.IsActive,
		"active":          u.IsActive,
		"createdAt":       u.CreatedAt,
		"updatedAt":       u.UpdatedAt,
	}
}
