package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeSpan_Valid(t *testing.T) {
	for _, s := range []TimeSpan{SpanWeek, SpanMonth, SpanYear, SpanInfinity} {
		assert.True(t, s.Valid(), "TimeSpan(%q) should be valid", s)
	}
	assert.False(t, TimeSpan("fortnight").Valid())
}

func TestTimeSpan_WindowStart(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.AddDate(0, 0, -7), SpanWeek.WindowStart(now))
	assert.Equal(t, now.AddDate(0, -1, 0), SpanMonth.WindowStart(now))
	assert.Equal(t, now.AddDate(-1, 0, 0), SpanYear.WindowStart(now))
	assert.True(t, SpanInfinity.WindowStart(now).IsZero(), "infinity span should have no window start")
}
