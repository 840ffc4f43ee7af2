package clock

import (
	"testing"
	"time"
)

func TestNow_ReturnsCurrentTime(t *testing.T) {
	before := time.Now()
	result := Now()
	after := time.Now()

	if result.Before(before) || result.After(after) {
		t.Errorf("Now() returned %v, expected between %v and %v", result, before, after)
	}
}

func TestMockClock_Advance(t *testing.T) {
	mockTime := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mock := NewMockClock(mockTime)

	mock.Advance(time.Hour)

	if got := mock.Now(); !got.Equal(mockTime.Add(time.Hour)) {
		t.Errorf("After Advance, Now() = %v", got)
	}
	if got := mock.Since(mockTime); got != time.Hour {
		t.Errorf("Since = %v, expected 1h", got)
	}

	mock.Set(mockTime)
	if !mock.Now().Equal(mockTime) {
		t.Error("Set did not reset the mock time")
	}
}

func TestOr(t *testing.T) {
	if _, ok := Or(nil).(RealClock); !ok {
		t.Error("Or(nil) should return RealClock")
	}
	m := NewMockClock(time.Unix(0, 0))
	if Or(m) != Clock(m) {
		t.Error("Or should keep a non-nil clock")
	}
}

func TestISO(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	if got := ISO(ts); got != "2025-01-02T02:04:05Z" {
		t.Errorf("ISO = %q", got)
	}
}
