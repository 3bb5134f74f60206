package kernel_test

import (
	"testing"
	"time"

	"backoffice/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestAddWorkingDays_FridayPlusOneIsMonday(t *testing.T) {
	// 2024-11-01 is a Friday.
	friday := time.Date(2024, 11, 1, 15, 30, 0, 0, time.UTC)

	got := kernel.AddWorkingDays(friday, 1)

	assert.Equal(t, time.Monday, got.Weekday())
	assert.Equal(t, time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestAddWorkingDays_SkipsWeekendInTheMiddle(t *testing.T) {
	// 2024-11-06 is a Wednesday; 3 working days later is Monday 11th.
	wednesday := time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC)

	got := kernel.AddWorkingDays(wednesday, 3)

	assert.Equal(t, time.Date(2024, 11, 11, 0, 0, 0, 0, time.UTC), got)
}

func TestAddWorkingDays_ZeroDaysTruncatesToDayStart(t *testing.T) {
	d := time.Date(2024, 11, 6, 23, 59, 59, 0, time.UTC)

	got := kernel.AddWorkingDays(d, 0)

	assert.Equal(t, time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC), got)
}

func TestAddWorkingDays_StartOnSaturday(t *testing.T) {
	// 2024-11-02 is a Saturday; one working day later is Monday 4th.
	saturday := time.Date(2024, 11, 2, 10, 0, 0, 0, time.UTC)

	got := kernel.AddWorkingDays(saturday, 1)

	assert.Equal(t, time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC), got)
}
