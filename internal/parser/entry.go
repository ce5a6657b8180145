package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedEntry is a report parsed from a quick-entry line. Unset numeric
// fields are -1 so callers can tell "absent" from zero.
type ParsedEntry struct {
	Title          string
	TagName        string
	Progress       int
	RemainingHours float64
	Date           string // ISO date, empty when not given
	Errors         []string
}

// ParseEntry extracts report metadata from a quick-entry line.
// Syntax: "Wired up the login flow #backend +80% 2.5h date:yesterday"
//   #tag        - Tag name, resolved against the server's tag list
//   +NN%        - Progress percentage
//   Nh / N.Nh   - Remaining hours
//   date:VALUE  - Report date (any format ParseDate accepts)
func ParseEntry(input string) ParsedEntry {
	result := ParsedEntry{
		Title:          input,
		Progress:       -1,
		RemainingHours: -1,
		Errors:         []string{},
	}

	// Extract the tag (#backend)
	tagRegex := regexp.MustCompile(`#([a-zA-Z0-9_-]+)`)
	tagMatches := tagRegex.FindStringSubmatch(input)
	if len(tagMatches) > 1 {
		result.TagName = tagMatches[1]
		input = tagRegex.ReplaceAllString(input, "")
	}

	// Extract progress (+80%)
	progressRegex := regexp.MustCompile(`\+(\d{1,3})%`)
	progressMatches := progressRegex.FindStringSubmatch(input)
	if len(progressMatches) > 1 {
		progress, err := strconv.Atoi(progressMatches[1])
		if err != nil || progress > 100 {
			result.Errors = append(result.Errors, "Invalid progress '"+progressMatches[0]+"'. Use +0% to +100%")
		} else {
			result.Progress = progress
		}
		input = progressRegex.ReplaceAllString(input, "")
	}

	// Extract remaining hours (4h, 2.5h)
	hoursRegex := regexp.MustCompile(`\b(\d+(?:\.\d+)?)h\b`)
	hoursMatches := hoursRegex.FindStringSubmatch(input)
	if len(hoursMatches) > 1 {
		hours, err := strconv.ParseFloat(hoursMatches[1], 64)
		if err != nil || hours < 0 {
			result.Errors = append(result.Errors, "Invalid remaining hours '"+hoursMatches[0]+"'")
		} else {
			result.RemainingHours = hours
		}
		input = hoursRegex.ReplaceAllString(input, "")
	}

	// Extract date (date:yesterday, date:2024-01-15)
	dateRegex := regexp.MustCompile(`date:([^\s]+)`)
	dateMatches := dateRegex.FindStringSubmatch(input)
	if len(dateMatches) > 1 {
		date, err := ParseDate(dateMatches[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid date '"+dateMatches[1]+"': "+err.Error())
		} else {
			result.Date = FormatISO(date)
		}
		input = dateRegex.ReplaceAllString(input, "")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}
