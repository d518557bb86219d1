package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zokirzonovbek1-art/school-food-system/internal/bootstrap"
	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A uniquely named in-memory database per test: shared cache keeps the
	// pool's connections on the same schema without leaking rows between
	// tests.
	testDBSeq++
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// emittedNotification captures one Emit call for assertions.
type emittedNotification struct {
	UserID  uint
	Type    string
	Title   string
	Message string
	Link    string
}

type recordingNotifier struct {
	emitted []emittedNotification
}

func (n *recordingNotifier) Emit(_ context.Context, userID uint, notifType, title, message, link string) {
	n.emitted = append(n.emitted, emittedNotification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Link:    link,
	})
}

var (
	testDBSeq   int
	testUserSeq int
)

func seedUser(t *testing.T, db *gorm.DB, role string, active bool) *model.User {
	t.Helper()

	testUserSeq++
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	now := model.UTCNow()
	user := &model.User{
		Email:        fmt.Sprintf("user%d@school.ru", testUserSeq),
		Login:        fmt.Sprintf("user%d", testUserSeq),
		PasswordHash: string(hash),
		FullName:     fmt.Sprintf("Тестовый Пользователь %d", testUserSeq),
		Role:         role,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price float64) *model.MenuItem {
	t.Helper()

	item := &model.MenuItem{
		Date:        model.Today(),
		MealType:    model.MealLunch,
		Name:        name,
		Price:       price,
		IsAvailable: true,
		CreatedAt:   model.UTCNow(),
	}
	require.NoError(t, db.Create(item).Error)
	return item
}
