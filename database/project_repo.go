package database

import (
	"database/sql"

	"github.com/Sandanu06/citf-backend-v1/models"
	"gorm.io/gorm"
)

// ProjectRow is one row of the projects LEFT JOIN project_images query.
// ImageURL is invalid for projects that own no images.
type ProjectRow struct {
	ID          uint
	Title       string
	Description string
	ImageID     sql.NullInt64
	ImageURL    sql.NullString
}

const projectsWithImagesSQL = `
SELECT p.id AS id, p.title AS title, p.description AS description,
       pi.id AS image_id, pi.image_url AS image_url
FROM projects p
LEFT JOIN project_images pi ON pi.project_id = p.id`

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAllWithImages returns every project joined with its images, newest project first.
func (r *ProjectRepo) FindAllWithImages() ([]ProjectRow, error) {
	return query[ProjectRow](r.db, projectsWithImagesSQL+` ORDER BY p.id DESC, pi.id ASC`)
}

// FindByIDWithImages returns the joined rows of one project. No rows means no project.
func (r *ProjectRepo) FindByIDWithImages(id uint) ([]ProjectRow, error) {
	return query[ProjectRow](r.db, projectsWithImagesSQL+` WHERE p.id = ? ORDER BY pi.id ASC`, id)
}

// Add inserts a new project and fills in its generated id
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Omit("Images").Create(project).Error
}

// Update rewrites title and description and reports how many rows matched
func (r *ProjectRepo) Update(project *models.Project) (int64, error) {
	return exec(r.db, `UPDATE projects SET title = ?, description = ? WHERE id = ?`,
		project.Title, project.Description, project.ID)
}

// Delete removes a project row by id. Image rows must be gone first.
func (r *ProjectRepo) Delete(id uint) error {
	_, err := exec(r.db, `DELETE FROM projects WHERE id = ?`, id)
	return err
}
