package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/zokirzonovbek1-art/school-food-system/internal/fieldmap"
	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
	"github.com/zokirzonovbek1-art/school-food-system/internal/repository"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/apperror"
)

// systemAdminID receives sign-up notifications, the seeded root account.
const systemAdminID = 1

// userUpdateFields declares which columns an external update may touch and
// how the values are coerced. Alias keys cover the payload spellings the old
// front-end pages still send.
var userUpdateFields = fieldmap.Mapping{
	{Key: "name", Column: "full_name", Rule: fieldmap.TrimmedString},
	{Key: "full_name", Column: "full_name", Rule: fieldmap.TrimmedString},
	{Key: "fullName", Column: "full_name", Rule: fieldmap.TrimmedString},
	{Key: "email", Column: "email"},
	{Key: "login", Column: "login"},
	{Key: "role", Column: "role", Rule: fieldmap.Enum(model.RoleStudent, model.RoleCook, model.RoleAdmin)},
	{Key: "class", Column: "class"},
	{Key: "allergies", Column: "allergies", Rule: fieldmap.StringList},
	{Key: "preferences", Column: "preferences"},
	{Key: "balance", Column: "balance", Rule: fieldmap.FloatOrZero},
	{Key: "specialization", Column: "specialization"},
	{Key: "position", Column: "position"},
	{Key: "permissionLevel", Column: "permission_level"},
	{Key: "isActive", Column: "is_active", Rule: fieldmap.Bool},
	{Key: "active", Column: "is_active", Rule: fieldmap.Bool},
}

type UserService interface {
	List(ctx context.Context, role string) ([]*model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	Search(ctx context.Context, q, role string) ([]*model.User, error)
	Create(ctx context.Context, payload fieldmap.Payload) (*model.User, error)
	Update(ctx context.Context, id uint, payload fieldmap.Payload) (*model.User, error)
	Delete(ctx context.Context, id uint) error
	ResetPassword(ctx context.Context, id uint, newPassword string) (*model.User, error)
	ToggleActive(ctx context.Context, id uint, active bool) (*model.User, error)
}

type userService struct {
	repo     repository.UserRepository
	notifier Notifier
}

func NewUserService(repo repository.UserRepository, notifier Notifier) UserService {
	return &userService{repo: repo, notifier: notifier}
}

func (s *userService) List(ctx context.Context, role string) ([]*model.User, error) {
	return s.repo.FindAll(ctx, role)
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Пользователь не найден")
	}
	return user, nil
}

func (s *userService) Search(ctx context.Context, q, role string) ([]*model.User, error) {
	return s.repo.Search(ctx, q, role)
}

func (s *userService) Create(ctx context.Context, payload fieldmap.Payload) (*model.User, error) {
	name := payload.String("name", "full_name", "fullName")
	email := payload.String("email")
	login := payload.String("login")
	password, _ := payload.Raw("password")

	passwordStr, _ := password.(string)
	if name == "" || email == "" || login == "" || passwordStr == "" {
		return nil, apperror.BadRequest("name, email, login, password обязательны")
	}

	role := payload.String("role")
	if role == "" {
		role = model.RoleStudent
	}
	if role != model.RoleStudent && role != model.RoleCook && role != model.RoleAdmin {
		return nil, apperror.BadRequest("Некорректная роль")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passwordStr), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	balance, _, err := payload.Float("balance")
	if err != nil {
		return nil, apperror.BadRequest("Некорректный balance")
	}

	active := true
	if v, ok, err := payload.Bool("isActive", "active"); err == nil && ok {
		active = v
	}

	now := model.UTCNow()
	user := &model.User{
		Email:        email,
		Login:        login,
		PasswordHash: string(hash),
		FullName:     name,
		Role:         role,
		Balance:      balance,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	setOptional(&user.Class, payload.String("class", "className"))
	setOptional(&user.Preferences, payload.String("preferences"))
	setOptional(&user.Specialization, payload.String("specialization"))
	setOptional(&user.Position, payload.String("position"))
	setOptional(&user.PermissionLevel, payload.String("permissionLevel"))
	if allergies, ok := payload.List("allergies"); ok {
		user.Allergies = &allergies
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return nil, apperror.Conflict("Пользователь с таким email или логином уже существует")
		}
		return nil, err
	}

	// New registrations are surfaced to the root admin account.
	if role != model.RoleAdmin {
		s.notifier.Emit(ctx, systemAdminID, model.NotifSystem,
			"Новый пользователь",
			fmt.Sprintf("Зарегистрирован новый пользователь: %s", name),
			"/admin.html")
	}

	return s.repo.FindByID(ctx, user.ID)
}

func (s *userService) Update(ctx context.Context, id uint, payload fieldmap.Payload) (*model.User, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "Пользователь не найден")
	}

	assignments, err := userUpdateFields.Apply(payload)
	if err != nil {
		return nil, mapFieldError(err)
	}

	cols := fieldmap.Columns(assignments)
	cols["updated_at"] = model.UTCNow()

	if err := s.repo.Update(ctx, id, cols); err != nil {
		if isDuplicateKey(err) {
			return nil, apperror.Conflict("Email или логин уже заняты")
		}
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if err == nil {
		return nil
	}
	if isRecordNotFound(err) {
		return apperror.NotFound("Пользователь не найден")
	}
	if errors.Is(err, repository.ErrLastActiveAdmin) {
		return apperror.Conflict("Нельзя удалить последнего активного администратора")
	}
	return err
}

func (s *userService) ResetPassword(ctx context.Context, id uint, newPassword string) (*model.User, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "Пользователь не найден")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cols := map[string]any{
		"password_hash": string(hash),
		"updated_at":    model.UTCNow(),
	}
	if err := s.repo.Update(ctx, id, cols); err != nil {
		return nil, err
	}

	s.notifier.Emit(ctx, id, model.NotifWarning,
		"Пароль сброшен",
		"Администратор сбросил ваш пароль.",
		"")

	return s.repo.FindByID(ctx, id)
}

// ToggleActive flips the account flag. The repository refuses to deactivate
// the last active administrator; that failure surfaces as a conflict and
// leaves the flag untouched.
func (s *userService) ToggleActive(ctx context.Context, id uint, active bool) (*model.User, error) {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if isRecordNotFound(err) {
			return nil, apperror.NotFound("Пользователь не найден")
		}
		if errors.Is(err, repository.ErrLastActiveAdmin) {
			return nil, apperror.Conflict("Нельзя деактивировать последнего активного администратора")
		}
		return nil, err
	}

	title := "Аккаунт деактивирован"
	message := "Ваш аккаунт был деактивирован администратором."
	if active {
		title = "Аккаунт активирован"
		message = "Ваш аккаунт был активирован администратором."
	}
	s.notifier.Emit(ctx, id, model.NotifSystem, title, message, "")

	return s.repo.FindByID(ctx, id)
}

func setOptional(dst **string, value string) {
	if value != "" {
		*dst = &value
	}
}
