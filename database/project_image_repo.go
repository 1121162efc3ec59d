package database

import (
	"github.com/Sandanu06/citf-backend-v1/models"
	"gorm.io/gorm"
)

type ProjectImageRepo struct {
	db *gorm.DB
}

func NewProjectImageRepo(db *gorm.DB) *ProjectImageRepo {
	return &ProjectImageRepo{db}
}

// FindURLsByProject returns the stored image paths of a project in insertion order
func (r *ProjectImageRepo) FindURLsByProject(projectID uint) ([]string, error) {
	return query[string](r.db, `SELECT image_url FROM project_images WHERE project_id = ? ORDER BY id ASC`, projectID)
}

// AddAll inserts one image row per url for the project. An empty list is a no-op.
func (r *ProjectImageRepo) AddAll(projectID uint, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	images := make([]models.ProjectImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, models.ProjectImage{ProjectID: projectID, ImageURL: url})
	}
	return r.db.Create(&images).Error
}

// DeleteByProject removes every image row owned by the project
func (r *ProjectImageRepo) DeleteByProject(projectID uint) (int64, error) {
	return exec(r.db, `DELETE FROM project_images WHERE project_id = ?`, projectID)
}
