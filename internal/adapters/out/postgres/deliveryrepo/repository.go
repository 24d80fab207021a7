package deliveryrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.DeliveryLedger = (*GormDeliveryRepository)(nil)

// ErrDuplicateDelivery is returned when a reservation is recorded twice.
var ErrDuplicateDelivery = errors.New("delivery already recorded")

// GormDeliveryRepository keeps the deliveries of one pipeline run. Rows of earlier runs
// stay in the table but are neither listed nor in conflict with new ones.
type GormDeliveryRepository struct {
	db    *gorm.DB
	runID string
}

func NewGormDeliveryRepository(db *gorm.DB, runID string) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db, runID: runID}
}

func (r *GormDeliveryRepository) Record(ctx context.Context, record delivery.Record) error {
	if record.ReservationID <= 0 {
		return errs.NewValueIsOutOfRangeError("reservationId", record.ReservationID, 1, "unbounded")
	}

	dto := fromDomain(r.runID, record)
	result := r.db.WithContext(ctx).Create(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("reservation %d: %w", record.ReservationID, ErrDuplicateDelivery)
		}
		return result.Error
	}
	return nil
}

func (r *GormDeliveryRepository) List(ctx context.Context) ([]delivery.Record, error) {
	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).Where("run_id = ?", r.runID).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]delivery.Record, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, toDomain(dto))
	}
	return records, nil
}
