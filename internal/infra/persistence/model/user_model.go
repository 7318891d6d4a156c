// Package model contains the GORM persistence models. They mirror table
// shapes only; domain entities never carry persistence concerns.
package model

import "time"

// UserModel mirrors the 'users' table. The store assigns numeric IDs.
// The transient plaintext password of the domain entity has no column here.
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"type:varchar(100);not null"`
	Surname      string `gorm:"type:varchar(100);not null"`
	Phone        string `gorm:"type:varchar(50);not null"`
	City         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	RememberedLogins []RememberedLoginModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
