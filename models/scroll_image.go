package models

// ScrollImage is a standalone gallery image, unrelated to any project.
type ScrollImage struct {
	ID       uint   `json:"id" db:"id" gorm:"column:id;primaryKey"`
	ImageURL string `json:"image_url" db:"image_url" gorm:"column:image_url;type:text;not null"`
}
