package event

import (
	"time"
)

// Occurrence - одно вычисленное вхождение при разворачивании расписания.
type Occurrence struct {
	Date      time.Time
	StartTime string
	EndTime   string
}

// ExpansionSpec описывает параметры разворачивания повторяющегося события.
type ExpansionSpec struct {
	Pattern    RecurrencePattern
	Interval   int
	RangeStart time.Time
	RangeEnd   time.Time
	Days       []time.Weekday // только WEEKLY/CUSTOM
	StartTime  string
	EndTime    string
}

// ExpandOccurrences разворачивает правило повторения в конечный список
// вхождений. Чистая функция: одинаковые входы всегда дают одинаковый
// результат. Пустой диапазон (RangeEnd < RangeStart) - пустой результат.
func ExpandOccurrences(spec ExpansionSpec) []Occurrence {
	rangeStart := DateOnly(spec.RangeStart)
	rangeEnd := DateOnly(spec.RangeEnd)
	if rangeEnd.Before(rangeStart) {
		return nil
	}

	interval := spec.Interval
	if interval < 1 {
		interval = 1
	}

	switch spec.Pattern {
	case RecurrenceDaily:
		return expandDaily(rangeStart, rangeEnd, interval, spec.StartTime, spec.EndTime)
	case RecurrenceWeekly, RecurrenceCustom:
		return expandWeekly(rangeStart, rangeEnd, interval, spec.Days, spec.StartTime, spec.EndTime)
	case RecurrenceMonthly:
		return expandMonthly(rangeStart, rangeEnd, interval, spec.StartTime, spec.EndTime)
	}
	return nil
}

// ExpandDateRange строит по одному вхождению на каждый календарный день
// диапазона. Используется для непериодических многодневных событий
// (COURSE/WORKSHOP c startDate != endDate).
func ExpandDateRange(rangeStart, rangeEnd time.Time, startTime, endTime string) []Occurrence {
	start := DateOnly(rangeStart)
	end := DateOnly(rangeEnd)
	if end.Before(start) {
		return nil
	}

	var out []Occurrence
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, Occurrence{Date: d, StartTime: startTime, EndTime: endTime})
	}
	return out
}

func expandDaily(rangeStart, rangeEnd time.Time, interval int, startTime, endTime string) []Occurrence {
	var out []Occurrence
	for d := rangeStart; !d.After(rangeEnd); d = d.AddDate(0, 0, interval) {
		out = append(out, Occurrence{Date: d, StartTime: startTime, EndTime: endTime})
	}
	return out
}

// expandWeekly отбирает даты, чей день недели входит в набор, но только в
// неделях, отстоящих от недели первого совпадения на кратное interval число
// недель. Недели считаются с понедельника.
func expandWeekly(rangeStart, rangeEnd time.Time, interval int, days []time.Weekday, startTime, endTime string) []Occurrence {
	if len(days) == 0 {
		return nil
	}
	mask := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		mask[d] = true
	}

	var out []Occurrence
	var anchor time.Time // начало недели первой подходящей даты
	for d := rangeStart; !d.After(rangeEnd); d = d.AddDate(0, 0, 1) {
		if !mask[d.Weekday()] {
			continue
		}
		if anchor.IsZero() {
			anchor = startOfWeek(d)
		}
		weeks := int(d.Sub(anchor).Hours()) / (24 * 7)
		if weeks%interval != 0 {
			continue
		}
		out = append(out, Occurrence{Date: d, StartTime: startTime, EndTime: endTime})
	}
	return out
}

// expandMonthly шагает по месяцам с шагом interval, удерживая день месяца
// первой даты; если в целевом месяце такого дня нет, берётся последний день
// месяца (31 января -> 28/29 февраля, не пропуск).
func expandMonthly(rangeStart, rangeEnd time.Time, interval int, startTime, endTime string) []Occurrence {
	baseDay := rangeStart.Day()

	var out []Occurrence
	for k := 0; ; k += interval {
		first := time.Date(rangeStart.Year(), rangeStart.Month()+time.Month(k), 1, 0, 0, 0, 0, time.UTC)
		day := baseDay
		if last := first.AddDate(0, 1, -1).Day(); day > last {
			day = last
		}
		d := first.AddDate(0, 0, day-1)
		if d.After(rangeEnd) {
			return out
		}
		out = append(out, Occurrence{Date: d, StartTime: startTime, EndTime: endTime})
	}
}

func startOfWeek(d time.Time) time.Time {
	return d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
}
