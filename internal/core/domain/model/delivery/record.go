// Package delivery holds the record written for every completed pickup.
package delivery

import "time"

// Record describes one meal handed to a courier. Delivery is instantaneous after pickup,
// so DeliveredAt is the pickup time.
type Record struct {
	CourierID     int
	ReservationID int64
	FoodWait      time.Duration
	CourierWait   time.Duration
	DeliveredAt   time.Time
}
