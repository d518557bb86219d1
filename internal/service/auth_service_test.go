package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
	"github.com/zokirzonovbek1-art/school-food-system/internal/repository"
)

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))
	ctx := context.Background()

	user := seedUser(t, db, model.RoleStudent, true)

	got, err := svc.Login(ctx, LoginInput{Login: user.Login, Password: "password", Role: model.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// Email works in place of the login.
	got, err = svc.Login(ctx, LoginInput{Login: user.Email, Password: "password", Role: model.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestLoginWrongCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))
	ctx := context.Background()

	user := seedUser(t, db, model.RoleStudent, true)

	_, err := svc.Login(ctx, LoginInput{Login: user.Login, Password: "wrong", Role: model.RoleStudent})
	require.Error(t, err)
	assert.Equal(t, "Неверный логин или пароль", err.Error())

	_, err = svc.Login(ctx, LoginInput{Login: "ghost", Password: "password", Role: model.RoleStudent})
	require.Error(t, err)
	assert.Equal(t, "Неверный логин или пароль", err.Error())
}

func TestLoginRoleMismatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	user := seedUser(t, db, model.RoleStudent, true)

	_, err := svc.Login(context.Background(), LoginInput{Login: user.Login, Password: "password", Role: model.RoleAdmin})
	require.Error(t, err)
	assert.Equal(t, "Неверная роль для данного аккаунта", err.Error())
}

func TestLoginInactiveAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	user := seedUser(t, db, model.RoleStudent, false)

	_, err := svc.Login(context.Background(), LoginInput{Login: user.Login, Password: "password", Role: model.RoleStudent})
	require.Error(t, err)
	assert.Equal(t, "Неверный логин или пароль", err.Error())
}
