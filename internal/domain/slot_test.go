package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameDate_NormalizesZones(t *testing.T) {
	slot := &TimeSlot{Date: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)}

	almaty := time.FixedZone("UTC+5", 5*3600)

	// 01:30 on the 8th in UTC+5 is still 20:30 on the 7th in UTC
	assert.True(t, slot.SameDate(time.Date(2026, 9, 8, 1, 30, 0, 0, almaty)))

	// 06:00 on the 8th in UTC+5 is 01:00 on the 8th in UTC
	assert.False(t, slot.SameDate(time.Date(2026, 9, 8, 6, 0, 0, 0, almaty)))

	assert.True(t, slot.SameDate(time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)))
	assert.False(t, slot.SameDate(time.Date(2026, 9, 6, 23, 59, 0, 0, time.UTC)))
}
