package specification

import "gorm.io/gorm"

// Unread keeps notifications the user has not opened.
type Unread struct{}

func (s Unread) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_read = ?", false)
}
