package courier

import "time"

// DispatchResult is returned by the fleet for every dispatch attempt. A result without a
// courier means no courier was available and nothing was scheduled.
type DispatchResult struct {
	courierID int
	found     bool
	eta       time.Duration
	published <-chan bool
}

// NewDispatchResult describes a courier sent out with the given ETA. The published channel
// yields once, telling whether the arrival notification reached the queue.
func NewDispatchResult(courierID int, eta time.Duration, published <-chan bool) DispatchResult {
	return DispatchResult{
		courierID: courierID,
		found:     true,
		eta:       eta,
		published: published,
	}
}

// NoCourierAvailable is the result of a dispatch that found the pool empty.
func NoCourierAvailable() DispatchResult {
	return DispatchResult{}
}

func (r DispatchResult) CourierID() (int, bool) {
	return r.courierID, r.found
}

func (r DispatchResult) ETA() time.Duration {
	return r.eta
}

// Published is nil when no courier was dispatched.
func (r DispatchResult) Published() <-chan bool {
	return r.published
}
