package database

import (
	"github.com/Sandanu06/citf-backend-v1/models"
	"gorm.io/gorm"
)

type VideoRepo struct {
	db *gorm.DB
}

func NewVideoRepo(db *gorm.DB) *VideoRepo {
	return &VideoRepo{db}
}

// FindAll returns all videos, most recent first
func (r *VideoRepo) FindAll() ([]models.Video, error) {
	return query[models.Video](r.db, `SELECT id, video_url FROM videos ORDER BY id DESC`)
}

// Exists reports whether a video row has the id
func (r *VideoRepo) Exists(id uint) (bool, error) {
	ids, err := query[uint](r.db, `SELECT id FROM videos WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// Add stores the url as given and fills in the generated id
func (r *VideoRepo) Add(video *models.Video) error {
	return r.db.Create(video).Error
}

// Delete removes a video row by id
func (r *VideoRepo) Delete(id uint) (int64, error) {
	return exec(r.db, `DELETE FROM videos WHERE id = ?`, id)
}
