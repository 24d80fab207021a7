// Package courier contains the Courier entity and its two-state lifecycle.
//
// A courier is either AVAILABLE, waiting at the depot, or DISPATCHED, travelling to the
// kitchen or holding a meal. The fleet is the only component that mutates couriers:
//
//	Available --Dispatch()--> Dispatched --Release()--> Available
//
// Any other transition is a consistency error and is reported, never applied.
package courier
