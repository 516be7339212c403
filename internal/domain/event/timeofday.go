package event

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Формат времени на границе API: 24-часовой "HH:MM",
// ведущий ноль в часах допускается опускать ("9:30").
var timeOfDayRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseTimeOfDay разбирает строку "HH:MM" в минуты с полуночи.
func ParseTimeOfDay(s string) (int, error) {
	m := timeOfDayRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, nil
}

// NormalizeTimeOfDay приводит строку времени к виду с ведущим нулём ("09:30").
func NormalizeTimeOfDay(s string) (string, error) {
	total, err := ParseTimeOfDay(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}

// FormatWeekdays сериализует набор дней недели в строку индексов "1,3,5"
// (0 = воскресенье, как в time.Weekday). Дни сортируются и дедуплицируются.
func FormatWeekdays(days []time.Weekday) string {
	seen := make(map[time.Weekday]bool, len(days))
	uniq := make([]int, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			uniq = append(uniq, int(d))
		}
	}
	sort.Ints(uniq)

	parts := make([]string, len(uniq))
	for i, d := range uniq {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

// ParseWeekdays разбирает строку вида "1,3,5" в набор дней недели.
// Пустая строка - пустой набор.
func ParseWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday index %q", p)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}

// DateOnly отбрасывает компонент времени, оставляя полночь UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
