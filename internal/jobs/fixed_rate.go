package jobs

import "time"

// fixedRateSchedule fires at first, first+period, first+2*period, ...
// Ticks that were missed while the previous run was busy are skipped, not replayed.
type fixedRateSchedule struct {
	first  time.Time
	period time.Duration
}

func newFixedRateSchedule(first time.Time, period time.Duration) fixedRateSchedule {
	return fixedRateSchedule{first: first, period: period}
}

// Next implements cron.Schedule.
func (s fixedRateSchedule) Next(t time.Time) time.Time {
	if t.Before(s.first) {
		return s.first
	}
	elapsed := t.Sub(s.first)
	return s.first.Add((elapsed/s.period + 1) * s.period)
}
