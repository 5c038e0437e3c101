package specification

import "gorm.io/gorm"

// BySiteID scopes chat history and context records to one embedded site.
type BySiteID struct {
	SiteID string
}

func (s BySiteID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("site_id = ?", s.SiteID)
}
