package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zokirzonovbek1-art/school-food-system/internal/bootstrap"
	"github.com/zokirzonovbek1-art/school-food-system/internal/config"
	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
	"github.com/zokirzonovbek1-art/school-food-system/internal/server"
)

var handlerTestSeq int

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handlerTestSeq++
	dsn := fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", handlerTestSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{AppEnv: "test", Port: "0"}
	srv := server.NewServer(cfg, db, nil)
	return srv.Engine(), db
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), "body: %s", w.Body.String())
	return w, decoded
}

func seedStudentAndMenu(t *testing.T, db *gorm.DB) (*model.User, *model.MenuItem) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	now := model.UTCNow()
	class := "10А"
	student := &model.User{
		Email:        fmt.Sprintf("student%d@school.ru", handlerTestSeq),
		Login:        fmt.Sprintf("student%d", handlerTestSeq),
		PasswordHash: string(hash),
		FullName:     "Петров Алексей",
		Role:         model.RoleStudent,
		Class:        &class,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.Create(student).Error)

	menu := &model.MenuItem{
		Date:        model.Today(),
		MealType:    model.MealLunch,
		Name:        "Борщ",
		Price:       120,
		IsAvailable: true,
		CreatedAt:   now,
	}
	require.NoError(t, db.Create(menu).Error)
	return student, menu
}

func TestOrderEndpointsEnvelope(t *testing.T) {
	engine, db := newTestServer(t)
	student, menu := seedStudentAndMenu(t, db)

	// The create payload uses the legacy dishId alias.
	w, body := doJSON(t, engine, http.MethodPost, "/api/orders", map[string]any{
		"studentId": student.ID,
		"dishId":    menu.ID,
		"quantity":  2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, body["ok"])

	order, ok := body["order"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(menu.ID), order["menuId"])
	assert.Equal(t, float64(menu.ID), order["dishId"])
	assert.Equal(t, "Борщ", order["dishName"])
	assert.Equal(t, float64(240), order["total"])
	assert.Equal(t, float64(240), order["price"])
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, "Петров Алексей", order["studentName"])
	assert.Equal(t, "10А", order["className"])

	orderID := int(order["id"].(float64))

	w, body = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])

	w, body = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/orders/%d", orderID), map[string]any{
		"status": "received",
	})
	require.Equal(t, http.StatusOK, w.Code)
	order = body["order"].(map[string]any)
	assert.Equal(t, "received", order["status"])
	assert.NotNil(t, order["receivedAt"])

	// The side-effect notification landed for the student.
	w, body = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/notifications?userId=%d", student.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifications := body["notifications"].([]any)
	require.NotEmpty(t, notifications)
}

func TestOrderCreateErrorEnvelope(t *testing.T) {
	engine, _ := newTestServer(t)

	w, body := doJSON(t, engine, http.MethodPost, "/api/orders", map[string]any{
		"quantity": 1,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "studentId and menuId required", body["error"])

	w, body = doJSON(t, engine, http.MethodGet, "/api/orders/99999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Заказ не найден", body["error"])
}

func TestLoginEndpoint(t *testing.T) {
	engine, db := newTestServer(t)
	student, _ := seedStudentAndMenu(t, db)

	w, body := doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]any{
		"login":    student.Login,
		"password": "password",
		"role":     "student",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["ok"])

	user := body["user"].(map[string]any)
	assert.Equal(t, student.Login, user["login"])
	assert.NotContains(t, user, "passwordHash")

	w, body = doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]any{
		"login":    student.Login,
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Неверный логин или пароль", body["error"])
}

func TestRegisterEndpoint(t *testing.T) {
	engine, _ := newTestServer(t)

	// Registration shares the user-creation path.
	w, body := doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Новиков Илья Павлович",
		"email":    "novikov@school.ru",
		"login":    "novikov",
		"password": "secret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, body["ok"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "novikov", user["login"])
	assert.Equal(t, "student", user["role"])

	w, body = doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]any{
		"login":    "novikov",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["ok"])
}

func TestHealthEndpoint(t *testing.T) {
	engine, _ := newTestServer(t)

	w, body := doJSON(t, engine, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "ok", body["status"])
}

func TestStatisticsEndpoint(t *testing.T) {
	engine, db := newTestServer(t)
	seedStudentAndMenu(t, db)

	w, body := doJSON(t, engine, http.MethodGet, "/api/statistics", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["ok"])

	stats, ok := body["statistics"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), stats["totalStudents"])
	assert.Equal(t, float64(0), stats["totalOrders"])
}

func TestNotificationListUnreadOnly(t *testing.T) {
	engine, db := newTestServer(t)
	student, _ := seedStudentAndMenu(t, db)

	now := model.UTCNow()
	require.NoError(t, db.Create(&model.Notification{
		UserID: student.ID, Type: model.NotifSystem,
		Title: "Прочитано", Message: "старое", IsRead: true, CreatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&model.Notification{
		UserID: student.ID, Type: model.NotifSystem,
		Title: "Новое", Message: "свежее", CreatedAt: now,
	}).Error)

	w, body := doJSON(t, engine, http.MethodGet,
		fmt.Sprintf("/api/notifications?userId=%d&unreadOnly=true", student.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list := body["notifications"].([]any)
	require.Len(t, list, 1)
	first := list[0].(map[string]any)
	assert.Equal(t, "Новое", first["title"])

	// Truthy spellings are case-insensitive; anything else means all.
	w, body = doJSON(t, engine, http.MethodGet,
		fmt.Sprintf("/api/notifications?userId=%d&unreadOnly=YES", student.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["notifications"].([]any), 1)

	w, body = doJSON(t, engine, http.MethodGet,
		fmt.Sprintf("/api/notifications?userId=%d&unreadOnly=0", student.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["notifications"].([]any), 2)
}
