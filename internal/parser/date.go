package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISODate is the wire format for report dates.
const ISODate = "2006-01-02"

// ParseDate parses the date formats accepted in filters and the report
// wizard. Reports describe work already done, so only today and the past
// make sense here; range checks against today are left to the caller.
// Supported formats:
// - yyyy-mm-dd (e.g., "2024-01-15")
// - dd/mm/yyyy (e.g., "15/01/2024")
// - "today", "yesterday"
// - X days ago (e.g., "3 days ago", "1 day ago")
func ParseDate(input string) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch input {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if t, err := time.ParseInLocation(ISODate, input, now.Location()); err == nil {
		return t, nil
	}

	if t, err := parseSlashDate(input, now.Location()); err == nil {
		return t, nil
	}

	if t, err := parseDaysAgo(input, today); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid date format. Use: yyyy-mm-dd, dd/mm/yyyy, today, yesterday, or X days ago")
}

// FormatISO renders a date the way the API expects it.
func FormatISO(t time.Time) string {
	return t.Format(ISODate)
}

// Today returns today's date in wire format.
func Today() string {
	return time.Now().Format(ISODate)
}

// parseSlashDate parses dd/mm/yyyy.
func parseSlashDate(input string, loc *time.Location) (time.Time, error) {
	dateRegex := regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	matches := dateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)

	// Rejects dates that normalized away, e.g. 31/02.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}

	return t, nil
}

// parseDaysAgo parses "X days ago".
func parseDaysAgo(input string, today time.Time) (time.Time, error) {
	agoRegex := regexp.MustCompile(`^(\d+)\s+(day|days)\s+ago$`)
	matches := agoRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid relative date format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number")
	}
	if amount < 1 || amount > 365 {
		return time.Time{}, fmt.Errorf("days must be between 1 and 365")
	}

	return today.AddDate(0, 0, -amount), nil
}
