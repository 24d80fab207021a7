// Package deliveryrepo stores the delivery ledger in PostgreSQL.
package deliveryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/delivery"
)

// DeliveryDTO is one row of the deliveries table. Waits are stored in milliseconds.
// Reservation ids restart with every process, so a row is unique per run.
type DeliveryDTO struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	RunID         string `gorm:"size:36;not null;default:'';uniqueIndex:idx_deliveries_run_reservation,priority:1"`
	CourierID     int    `gorm:"index;not null"`
	ReservationID int64  `gorm:"not null;uniqueIndex:idx_deliveries_run_reservation,priority:2"`
	FoodWaitMs    int64
	CourierWaitMs int64
	DeliveredAt   time.Time `gorm:"index;not null"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(runID string, r delivery.Record) DeliveryDTO {
	return DeliveryDTO{
		RunID:         runID,
		CourierID:     r.CourierID,
		ReservationID: r.ReservationID,
		FoodWaitMs:    r.FoodWait.Milliseconds(),
		CourierWaitMs: r.CourierWait.Milliseconds(),
		DeliveredAt:   r.DeliveredAt.UTC(),
	}
}

func toDomain(dto DeliveryDTO) delivery.Record {
	return delivery.Record{
		CourierID:     dto.CourierID,
		ReservationID: dto.ReservationID,
		FoodWait:      time.Duration(dto.FoodWaitMs) * time.Millisecond,
		CourierWait:   time.Duration(dto.CourierWaitMs) * time.Millisecond,
		DeliveredAt:   dto.DeliveredAt,
	}
}
