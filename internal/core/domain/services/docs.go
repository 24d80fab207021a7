// Package services contains the domain services of the fulfillment pipeline that hold
// no timers of their own:
//
//   - RetryBudget, the token bucket the idle monitor spends while it finds no work.
//   - FIFOMatcher and AffinityMatcher, the two interchangeable strategies that pair a
//     ready meal with an arrived courier.
//   - Metrics, the counters and running averages written by the order processor.
//
// Every service guards its own state with its own mutex and never calls into another
// component while holding it; cross-component coordination happens through events.
package services
