package ocr

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateGroups = regexp.MustCompile(`^(\d{1,4})[./\- ](\d{1,2})[./\- ](\d{1,4})$`)

// NormalizeDate rewrites a recognised date as YYYY-MM-DD.
//
// With a trailing four-digit year the day and month are told apart by
// magnitude: a group above 12 is the day, otherwise the first group is.
// With a leading four-digit year the order is year, month, day, swapped only
// when the middle group cannot be a month. Anything else, including dates
// that do not exist, is returned unchanged.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	m := dateGroups.FindStringSubmatch(s)
	if m == nil {
		return raw
	}
	first, middle, last := m[1], m[2], m[3]
	a, _ := strconv.Atoi(first)
	b, _ := strconv.Atoi(middle)
	c, _ := strconv.Atoi(last)

	var year, month, day int
	switch {
	case len(last) == 4 && len(first) <= 2:
		year = c
		switch {
		case a > 12 && b > 12:
			return raw
		case b > 12:
			month, day = a, b
		default:
			day, month = a, b
		}
	case len(first) == 4 && len(last) <= 2:
		year, month, day = a, b, c
		if b > 12 && c <= 12 {
			month, day = c, b
		}
	default:
		return raw
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return raw
	}
	return t.Format("2006-01-02")
}
