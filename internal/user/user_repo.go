package user

import (
	"context"
	"errors"

	usererrors "go-teamhub/internal/user/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the read-only directory over users owned by the user
// management service.
type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	var u User
	err = r.db.WithContext(ctx).First(&u, "id = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usererrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindAll returns every user ordered by employee id, the sweep order used
// by the scheduled attendance and payroll jobs.
func (r *repository) FindAll(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Order("emp_id ASC").
		Find(&users).Error
	return users, err
}
