package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.MenuItem{},
		&model.Order{},
		&model.InventoryItem{},
		&model.PurchaseRequest{},
		&model.Notification{},
		&model.Settings{},
		&model.Payment{},
	)
}

// SeedDemoUsers creates the demo accounts used by the development front-end.
// Idempotent: an existing users table is left alone.
func SeedDemoUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash := func(password string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}
		return string(h)
	}

	now := model.UTCNow()
	strPtr := func(s string) *string { return &s }

	users := []model.User{
		{
			Email:           "admin@school.ru",
			Login:           "admin",
			PasswordHash:    hash("admin"),
			FullName:        "Администратор Системы",
			Role:            model.RoleAdmin,
			PermissionLevel: strPtr("full"),
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			Email:          "cook@school.ru",
			Login:          "cook",
			PasswordHash:   hash("cook"),
			FullName:       "Иванова Мария Петровна",
			Role:           model.RoleCook,
			Specialization: strPtr("Горячие блюда"),
			Position:       strPtr("Шеф-повар"),
			IsActive:       true,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			Email:        "student1@school.ru",
			Login:        "student1",
			PasswordHash: hash("password"),
			FullName:     "Петров Алексей Иванович",
			Role:         model.RoleStudent,
			Class:        strPtr("10А"),
			Allergies:    strPtr(`["орехи"]`),
			Balance:      1500,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			Email:        "student2@school.ru",
			Login:        "student2",
			PasswordHash: hash("password"),
			FullName:     "Сидорова Анна Сергеевна",
			Role:         model.RoleStudent,
			Class:        strPtr("9Б"),
			Allergies:    strPtr(`["молоко","глютен"]`),
			Balance:      800,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			Email:        "student3@school.ru",
			Login:        "student3",
			PasswordHash: hash("password"),
			FullName:     "Козлов Дмитрий Андреевич",
			Role:         model.RoleStudent,
			Class:        strPtr("11В"),
			Balance:      1200,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}

	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return err
		}
	}

	log.Println("Demo users seeded: admin/admin, cook/cook, student1-3/password")
	return nil
}
