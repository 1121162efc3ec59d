package database

import (
	"github.com/Sandanu06/citf-backend-v1/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByUsername returns nil without error for unknown usernames
func (r *UserRepo) FindByUsername(username string) (*models.User, error) {
	users, err := query[models.User](r.db, `SELECT id, username, password FROM users WHERE username = ?`, username)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// Add inserts a user. A taken username surfaces as an error matched by IsUniqueViolation.
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}
