package implementation

import (
	"errors"

	"cassie-be/internal/repository/specification"

	"gorm.io/gorm"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// findOne loads the first row of M matching specs and maps it. No match is
// nil, nil so services can tell "absent" from a storage failure.
func findOne[M any, E any](db *gorm.DB, toEntity func(*M) *E, specs ...specification.Specification) (*E, error) {
	var row M
	if err := applySpecifications(db, specs...).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toEntity(&row), nil
}
