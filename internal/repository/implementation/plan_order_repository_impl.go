package implementation

import (
	"context"
	"encoding/json"

	"cassie-be/internal/entity"
	"cassie-be/internal/mapper"
	"cassie-be/internal/model"
	"cassie-be/internal/repository/contract"
	"cassie-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PlanOrderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.JourneyMapper
}

func NewPlanOrderRepository(db *gorm.DB) contract.PlanOrderRepository {
	return &PlanOrderRepositoryImpl{
		db:     db,
		mapper: mapper.NewJourneyMapper(),
	}
}

func (r *PlanOrderRepositoryImpl) Create(ctx context.Context, order *entity.PlanOrder) error {
	if order.Id == uuid.Nil {
		order.Id = uuid.New()
	}
	m := r.mapper.PlanOrderToModel(order)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*order = *r.mapper.PlanOrderToEntity(m)
	return nil
}

// Update writes the mutable order columns; the webhook payload log is left alone.
func (r *PlanOrderRepositoryImpl) Update(ctx context.Context, order *entity.PlanOrder) error {
	return r.db.WithContext(ctx).Model(&model.PlanOrder{}).
		Where("id = ?", order.Id).
		Updates(map[string]interface{}{
			"status":                  string(order.Status),
			"midtrans_transaction_id": order.MidtransTransactionId,
			"snap_token":              order.SnapToken,
			"snap_redirect_url":       order.SnapRedirectUrl,
			"paid_at":                 order.PaidAt,
		}).Error
}

func (r *PlanOrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PlanOrder, error) {
	return findOne(r.db.WithContext(ctx), r.mapper.PlanOrderToEntity, specs...)
}

func (r *PlanOrderRepositoryImpl) AppendNotification(ctx context.Context, id uuid.UUID, payload map[string]interface{}) error {
	var m model.PlanOrder
	if err := r.db.WithContext(ctx).Select("id", "notifications").Where("id = ?", id).First(&m).Error; err != nil {
		return err
	}

	var history []map[string]interface{}
	if len(m.Notifications) > 0 {
		if err := json.Unmarshal(m.Notifications, &history); err != nil {
			return err
		}
	}
	history = append(history, payload)

	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.PlanOrder{}).
		Where("id = ?", id).
		Update("notifications", datatypes.JSON(raw)).Error
}
