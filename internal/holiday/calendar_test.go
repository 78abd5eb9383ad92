package holiday

import (
	"testing"
	"time"
)

func TestCalendarRecurringMatchesEveryYear(t *testing.T) {
	t.Parallel()

	cal := NewCalendar().AddRecurring(time.January, 1, "New Year")

	for _, year := range []int{2024, 2025, 2030} {
		name, ok := cal.Holiday(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
		if !ok || name != "New Year" {
			t.Fatalf("expected New Year in %d, got %q ok=%v", year, name, ok)
		}
	}

	if _, ok := cal.Holiday(time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)); ok {
		t.Fatal("expected January 2 to be a regular day")
	}
}

func TestCalendarDatedMatchesSingleDate(t *testing.T) {
	t.Parallel()

	easter := time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)
	cal := NewCalendar().AddDate(easter, "Easter")

	if name, ok := cal.Holiday(easter); !ok || name != "Easter" {
		t.Fatalf("expected Easter, got %q ok=%v", name, ok)
	}
	if _, ok := cal.Holiday(easter.AddDate(1, 0, 0)); ok {
		t.Fatal("dated entries must not recur")
	}
}

func TestUkrainianFixedDates(t *testing.T) {
	t.Parallel()

	cal := Ukrainian()

	name, ok := cal.Holiday(time.Date(2024, time.August, 24, 0, 0, 0, 0, time.UTC))
	if !ok {
		t.Fatal("expected August 24 to be a holiday")
	}
	if name == "" {
		t.Fatal("expected a holiday name")
	}
}
