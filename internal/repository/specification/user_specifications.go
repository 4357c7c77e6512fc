package specification

import "gorm.io/gorm"

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByGoogleId struct {
	GoogleId string
}

func (s ByGoogleId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("google_id = ?", s.GoogleId)
}
