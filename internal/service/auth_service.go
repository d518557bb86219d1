package service

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
	"github.com/zokirzonovbek1-art/school-food-system/internal/repository"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/apperror"
)

type LoginInput struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Login accepts either the login name or the email. Inactive accounts are
// invisible here, so they fail the same way as a wrong password.
func (s *authService) Login(ctx context.Context, input LoginInput) (*model.User, error) {
	login := strings.TrimSpace(input.Login)

	user, err := s.userRepo.FindActiveByLoginOrEmail(ctx, login)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperror.New(http.StatusUnauthorized, "Неверный логин или пароль", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, apperror.New(http.StatusUnauthorized, "Неверный логин или пароль", apperror.ErrUnauthorized)
	}

	if input.Role != "" && user.Role != input.Role {
		return nil, apperror.New(http.StatusForbidden, "Неверная роль для данного аккаунта", apperror.ErrForbidden)
	}

	return user, nil
}
