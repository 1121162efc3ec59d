package models

type Video struct {
	ID       uint   `json:"id" db:"id" gorm:"column:id;primaryKey"`
	VideoURL string `json:"video_url" db:"video_url" gorm:"column:video_url;type:text;not null"`
}
