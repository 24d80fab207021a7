package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedRateSchedule_Next(t *testing.T) {
	first := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newFixedRateSchedule(first, 100*time.Millisecond)

	testCases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"before first", first.Add(-time.Second), first},
		{"exactly first", first, first.Add(100 * time.Millisecond)},
		{"between ticks", first.Add(150 * time.Millisecond), first.Add(200 * time.Millisecond)},
		{"missed ticks are skipped", first.Add(1050 * time.Millisecond), first.Add(1100 * time.Millisecond)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.Next(tc.now))
		})
	}
}
