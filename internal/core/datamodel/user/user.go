package user

import "time"

type User struct {
	ID           int64      `gorm:"primaryKey"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	Username     string     `gorm:"column:username;uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Active       bool       `gorm:"column:active;default:true"`
	Uniquifier   string     `gorm:"column:uniquifier;uniqueIndex;not null"`
	ConfirmedAt  *time.Time `gorm:"column:confirmed_at"`
	Roles        []Role     `gorm:"many2many:user_roles"`
}

func (User) TableName() string {
	return "users"
}

type Role struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
}

func (Role) TableName() string {
	return "roles"
}
