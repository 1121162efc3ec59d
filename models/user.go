package models

// User holds login credentials. The password column only ever stores a bcrypt digest.
type User struct {
	ID           uint   `json:"id" db:"id" gorm:"column:id;primaryKey"`
	Username     string `json:"username" db:"username" gorm:"column:username;type:text;not null;uniqueIndex:idx_users_username"`
	PasswordHash string `json:"-" db:"password" gorm:"column:password;type:text;not null"`
}
