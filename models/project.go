package models

// Project is a portfolio entry. Images are owned rows in project_images.
type Project struct {
	ID          uint           `json:"id" db:"id" gorm:"column:id;primaryKey"`
	Title       string         `json:"title" db:"title" gorm:"column:title;type:text;not null"`
	Description string         `json:"description" db:"description" gorm:"column:description;type:text;not null"`
	Images      []ProjectImage `json:"-" gorm:"foreignKey:ProjectID;references:ID"`
}

// ProjectImage stores the relative URL of one uploaded project image.
type ProjectImage struct {
	ID        uint   `json:"id" db:"id" gorm:"column:id;primaryKey"`
	ProjectID uint   `json:"project_id" db:"project_id" gorm:"column:project_id;not null;index:idx_project_images_project_id"`
	ImageURL  string `json:"image_url" db:"image_url" gorm:"column:image_url;type:text;not null"`
}
