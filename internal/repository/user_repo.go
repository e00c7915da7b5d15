package repository

import (
	"errors"

	"github.com/reportdesk/backend/internal/model"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.UserProfile) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Get(id uint) (*model.UserProfile, error) {
	var user model.UserProfile
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(username string) (*model.UserProfile, error) {
	var user model.UserProfile
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List() ([]model.UserProfile, error) {
	var users []model.UserProfile
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) Save(user *model.UserProfile) error {
	return r.db.Save(user).Error
}
