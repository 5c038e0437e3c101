package specification

import "gorm.io/gorm"

// PaidForPlan matches settled orders for one plan.
type PaidForPlan struct {
	PlanID string
}

func (s PaidForPlan) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("plan_id = ? AND status = ?", s.PlanID, "paid")
}
