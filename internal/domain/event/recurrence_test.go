package event

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandDeterministic(t *testing.T) {
	spec := ExpansionSpec{
		Pattern:    RecurrenceWeekly,
		Interval:   2,
		RangeStart: date(2025, time.December, 1),
		RangeEnd:   date(2026, time.February, 28),
		Days:       []time.Weekday{time.Monday, time.Thursday},
		StartTime:  "18:00",
		EndTime:    "20:00",
	}

	first := ExpandOccurrences(spec)
	second := ExpandOccurrences(spec)

	if len(first) == 0 {
		t.Fatal("expected occurrences, got none")
	}
	if len(first) != len(second) {
		t.Fatalf("expansion not deterministic: %d vs %d occurrences", len(first), len(second))
	}
	for i := range first {
		if !first[i].Date.Equal(second[i].Date) {
			t.Fatalf("occurrence %d differs: %v vs %v", i, first[i].Date, second[i].Date)
		}
	}
}

func TestExpandDailyInterval(t *testing.T) {
	out := ExpandOccurrences(ExpansionSpec{
		Pattern:    RecurrenceDaily,
		Interval:   3,
		RangeStart: date(2025, time.March, 1),
		RangeEnd:   date(2025, time.March, 10),
		StartTime:  "10:00",
		EndTime:    "11:00",
	})

	want := []time.Time{
		date(2025, time.March, 1),
		date(2025, time.March, 4),
		date(2025, time.March, 7),
		date(2025, time.March, 10),
	}
	if len(out) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(out))
	}
	for i, w := range want {
		if !out[i].Date.Equal(w) {
			t.Errorf("occurrence %d: expected %v, got %v", i, w, out[i].Date)
		}
	}
}

func TestExpandWeeklyEveryOtherWeek(t *testing.T) {
	// 4 недели с понедельника 2025-12-01; каждый второй понедельник
	out := ExpandOccurrences(ExpansionSpec{
		Pattern:    RecurrenceWeekly,
		Interval:   2,
		RangeStart: date(2025, time.December, 1),
		RangeEnd:   date(2025, time.December, 28),
		Days:       []time.Weekday{time.Monday},
		StartTime:  "18:00",
		EndTime:    "19:00",
	})

	if len(out) != 2 {
		t.Fatalf("expected 2 occurrences (weeks 1 and 3), got %d", len(out))
	}
	if !out[0].Date.Equal(date(2025, time.December, 1)) {
		t.Errorf("first occurrence: expected Dec 1, got %v", out[0].Date)
	}
	if !out[1].Date.Equal(date(2025, time.December, 15)) {
		t.Errorf("second occurrence: expected Dec 15, got %v", out[1].Date)
	}
}

func TestExpandWeeklyMultipleDays(t *testing.T) {
	out := ExpandOccurrences(ExpansionSpec{
		Pattern:    RecurrenceWeekly,
		Interval:   1,
		RangeStart: date(2025, time.December, 1), // понедельник
		RangeEnd:   date(2025, time.December, 7),
		Days:       []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		StartTime:  "09:00",
		EndTime:    "10:00",
	})

	want := []time.Time{
		date(2025, time.December, 1),
		date(2025, time.December, 3),
		date(2025, time.December, 5),
	}
	if len(out) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(out))
	}
	for i, w := range want {
		if !out[i].Date.Equal(w) {
			t.Errorf("occurrence %d: expected %v, got %v", i, w, out[i].Date)
		}
	}
}

func TestExpandWeeklyAnchorsOnFirstMatch(t *testing.T) {
	// Диапазон начинается в среду: якорная неделя - неделя первого
	// подходящего понедельника (Dec 8), не неделя начала диапазона
	out := ExpandOccurrences(ExpansionSpec{
		Pattern:    RecurrenceWeekly,
		Interval:   2,
		RangeStart: date(2025, time.December, 3),
		RangeEnd:   date(2025, time.December, 28),
		Days:       []time.Weekday{time.Monday},
		StartTime:  "18:00",
		EndTime:    "19:00",
	})

	if len(out) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(out))
	}
	if !out[0].Date.Equal(date(2025, time.December, 8)) {
		t.Errorf("first occurrence: expected Dec 8, got %v", out[0].Date)
	}
	if !out[1].Date.Equal(date(2025, time.December, 22)) {
		t.Errorf("second occurrence: expected Dec 22, got %v", out[1].Date)
	}
}

func TestExpandCustomBehavesLikeWeekly(t *testing.T) {
	spec := ExpansionSpec{
		Interval:   1,
		RangeStart: date(2025, time.December, 1),
		RangeEnd:   date(2025, time.December, 14),
		Days:       []time.Weekday{time.Tuesday},
		StartTime:  "12:00",
		EndTime:    "13:00",
	}

	spec.Pattern = RecurrenceWeekly
	weekly := ExpandOccurrences(spec)
	spec.Pattern = RecurrenceCustom
	custom := ExpandOccurrences(spec)

	if len(weekly) != len(custom) {
		t.Fatalf("custom and weekly disagree: %d vs %d", len(custom), len(weekly))
	}
	for i := range weekly {
		if !weekly[i].Date.Equal(custom[i].Date) {
			t.Errorf("occurrence %d: weekly %v, custom %v", i, weekly[i].Date, custom[i].Date)
		}
	}
}

func TestExpandMonthlyClampsToLastDay(t *testing.T) {
	out := ExpandOccurrences(ExpansionSpec{
		Pattern:    RecurrenceMonthly,
		Interval:   1,
		RangeStart: date(2024, time.January, 31),
		RangeEnd:   date(2024, time.April, 30),
		StartTime:  "10:00",
		EndTime:    "12:00",
	})

	want := []time.Time{
		date(2024, time.January, 31),
		date(2024, time.February, 29), // високосный
		date(2024, time.March, 31),
		date(2024, time.April, 30),
	}
	if len(out) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(out))
	}
	for i, w := range want {
		if !out[i].Date.Equal(w) {
			t.Errorf("occurrence %d: expected %v, got %v", i, w, out[i].Date)
		}
	}
}

func TestExpandMonthlyClampNonLeap(t *testing.T) {
	out := ExpandOccurrences(ExpansionSpec{
		Pattern:    RecurrenceMonthly,
		Interval:   1,
		RangeStart: date(2025, time.January, 31),
		RangeEnd:   date(2025, time.February, 28),
		StartTime:  "10:00",
		EndTime:    "12:00",
	})

	if len(out) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(out))
	}
	if !out[1].Date.Equal(date(2025, time.February, 28)) {
		t.Errorf("expected clamp to Feb 28, got %v", out[1].Date)
	}
}

func TestExpandMonthlyInterval(t *testing.T) {
	out := ExpandOccurrences(ExpansionSpec{
		Pattern:    RecurrenceMonthly,
		Interval:   2,
		RangeStart: date(2025, time.January, 15),
		RangeEnd:   date(2025, time.July, 15),
		StartTime:  "10:00",
		EndTime:    "12:00",
	})

	want := []time.Time{
		date(2025, time.January, 15),
		date(2025, time.March, 15),
		date(2025, time.May, 15),
		date(2025, time.July, 15),
	}
	if len(out) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(out))
	}
	for i, w := range want {
		if !out[i].Date.Equal(w) {
			t.Errorf("occurrence %d: expected %v, got %v", i, w, out[i].Date)
		}
	}
}

func TestExpandEmptyRange(t *testing.T) {
	out := ExpandOccurrences(ExpansionSpec{
		Pattern:    RecurrenceDaily,
		Interval:   1,
		RangeStart: date(2025, time.March, 10),
		RangeEnd:   date(2025, time.March, 1),
		StartTime:  "10:00",
		EndTime:    "11:00",
	})
	if len(out) != 0 {
		t.Fatalf("expected empty result for inverted range, got %d occurrences", len(out))
	}

	if got := ExpandDateRange(date(2025, time.March, 10), date(2025, time.March, 1), "10:00", "11:00"); len(got) != 0 {
		t.Fatalf("expected empty date range, got %d occurrences", len(got))
	}
}

func TestExpandDateRangePerDay(t *testing.T) {
	out := ExpandDateRange(date(2025, time.December, 1), date(2025, time.December, 3), "10:00", "12:00")

	if len(out) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(out))
	}
	for i, occ := range out {
		if !occ.Date.Equal(date(2025, time.December, 1+i)) {
			t.Errorf("occurrence %d: unexpected date %v", i, occ.Date)
		}
		if occ.StartTime != "10:00" || occ.EndTime != "12:00" {
			t.Errorf("occurrence %d: unexpected times %s-%s", i, occ.StartTime, occ.EndTime)
		}
	}
}

func TestExpandZeroIntervalTreatedAsOne(t *testing.T) {
	out := ExpandOccurrences(ExpansionSpec{
		Pattern:    RecurrenceDaily,
		Interval:   0,
		RangeStart: date(2025, time.March, 1),
		RangeEnd:   date(2025, time.March, 3),
		StartTime:  "10:00",
		EndTime:    "11:00",
	})
	if len(out) != 3 {
		t.Fatalf("expected 3 occurrences with interval fallback, got %d", len(out))
	}
}
