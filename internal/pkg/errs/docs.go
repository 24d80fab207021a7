// Package errs provides standardized error types for the fulfillment pipeline.
//
// Each error type pairs a sentinel (ErrObjectNotFound, ErrValueIsRequired, ...) with a
// struct carrying the details, so callers can branch with errors.Is and still log a
// precise message:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // a courier or reservation id was unknown
//	}
//
// Validation errors (ValueIsRequired, ValueIsInvalid, ValueIsOutOfRange) are produced at
// the boundary before an order enters the pipeline. ObjectNotFound signals a consistency
// error inside the core: a release of a courier that is not dispatched, or a preparation
// request for an unknown reservation.
package errs
