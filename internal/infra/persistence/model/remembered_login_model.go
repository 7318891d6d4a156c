package model

import "time"

// RememberedLoginModel mirrors the 'remembered_logins' table. The token hash
// is the primary key, so storage enforces its uniqueness and concurrent
// remember-me issuance is safe without explicit locking.
type RememberedLoginModel struct {
	TokenHash string    `gorm:"type:varchar(64);primaryKey"`
	UserID    int64     `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RememberedLoginModel) TableName() string {
	return "remembered_logins"
}
