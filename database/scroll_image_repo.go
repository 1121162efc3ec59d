package database

import (
	"github.com/Sandanu06/citf-backend-v1/models"
	"gorm.io/gorm"
)

type ScrollImageRepo struct {
	db *gorm.DB
}

func NewScrollImageRepo(db *gorm.DB) *ScrollImageRepo {
	return &ScrollImageRepo{db}
}

// FindAll returns all scroll images, most recent first
func (r *ScrollImageRepo) FindAll() ([]models.ScrollImage, error) {
	return query[models.ScrollImage](r.db, `SELECT id, image_url FROM scroll_images ORDER BY id DESC`)
}

// FindByID returns nil without error when no row has the id
func (r *ScrollImageRepo) FindByID(id uint) (*models.ScrollImage, error) {
	rows, err := query[models.ScrollImage](r.db, `SELECT id, image_url FROM scroll_images WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// AddAll inserts one row per stored path and returns the created rows
func (r *ScrollImageRepo) AddAll(urls []string) ([]models.ScrollImage, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	images := make([]models.ScrollImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, models.ScrollImage{ImageURL: url})
	}
	if err := r.db.Create(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// Delete removes a scroll image row by id
func (r *ScrollImageRepo) Delete(id uint) (int64, error) {
	return exec(r.db, `DELETE FROM scroll_images WHERE id = ?`, id)
}
