package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
)

// ErrLastActiveAdmin is returned when a delete or deactivation would leave
// the system without a single active administrator.
var ErrLastActiveAdmin = errors.New("last active administrator")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindActiveByLoginOrEmail(ctx context.Context, login string) (*model.User, error)
	FindAll(ctx context.Context, role string) ([]*model.User, error)
	Search(ctx context.Context, q, role string) ([]*model.User, error)
	FindActiveAdmins(ctx context.Context) ([]*model.User, error)
	CountActiveAdmins(ctx context.Context) (int64, error)
	CountActiveStudents(ctx context.Context) (int64, error)
	Update(ctx context.Context, id uint, cols map[string]any) error
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindActiveByLoginOrEmail(ctx context.Context, login string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("(email = ? OR login = ?) AND is_active = ?", login, login, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context, role string) ([]*model.User, error) {
	var users []*model.User
	query := r.db.WithContext(ctx).Order("id")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Search(ctx context.Context, q, role string) ([]*model.User, error) {
	var users []*model.User
	query := r.db.WithContext(ctx).Order("id")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(login) LIKE ? OR LOWER(COALESCE(class, '')) LIKE ? OR CAST(id AS TEXT) LIKE ?",
			like, like, like, like, like,
		)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindActiveAdmins(ctx context.Context) ([]*model.User, error) {
	var admins []*model.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", model.RoleAdmin, true).
		Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *userRepository) CountActiveAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ? AND is_active = ?", model.RoleAdmin, true).
		Count(&count).Error
	return count, err
}

func (r *userRepository) CountActiveStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ? AND is_active = ?", model.RoleStudent, true).
		Count(&count).Error
	return count, err
}

func (r *userRepository) Update(ctx context.Context, id uint, cols map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(cols).Error
}

// SetActive flips the active flag inside one transaction so the admin-count
// check and the write cannot interleave with another connection's commit on
// this row. Two concurrent deactivations can still both pass the count at the
// store's default isolation; see DESIGN.md.
func (r *userRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		if !active && user.Role == model.RoleAdmin && user.IsActive {
			var count int64
			if err := tx.Model(&model.User{}).
				Where("role = ? AND is_active = ?", model.RoleAdmin, true).
				Count(&count).Error; err != nil {
				return err
			}
			if count <= 1 {
				return ErrLastActiveAdmin
			}
		}

		return tx.Model(&model.User{}).Where("id = ?", id).
			Updates(map[string]any{"is_active": active, "updated_at": model.UTCNow()}).Error
	})
}

// Delete removes the user with the same last-active-admin safeguard as
// SetActive, in a single transaction.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		if user.Role == model.RoleAdmin && user.IsActive {
			var count int64
			if err := tx.Model(&model.User{}).
				Where("role = ? AND is_active = ?", model.RoleAdmin, true).
				Count(&count).Error; err != nil {
				return err
			}
			if count <= 1 {
				return ErrLastActiveAdmin
			}
		}

		return tx.Delete(&model.User{}, id).Error
	})
}
