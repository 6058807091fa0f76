package repository

import (
	"context"
	"errors"

	"authbox/internal/domain"
	"authbox/internal/uow"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = domain.NormalizeEmail(u.Email)
	return uow.DB(ctx, r.db).Create(u).Error
}

// FindByEmail returns (nil, nil) when the user does not exist.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := uow.DB(ctx, r.db).
		Where("email = ?", domain.NormalizeEmail(email)).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := uow.DB(ctx, r.db).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateFields applies an explicit transition (e.g. activation) as a single
// conditional update instead of writing back a mutated entity.
func (r *UserRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return uow.DB(ctx, r.db).Model(&domain.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}
