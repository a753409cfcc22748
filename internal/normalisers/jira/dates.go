package jira

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
)

// DateFormat describes the date layout used by tracker exports,
// e.g. "Mon, 16 Feb 2004 00:29:19 +0000".
const DateFormat = "EEE, dd MMM yyyy HH:mm:ss Z"

// dateFields matches DateFormat as a prefix. Numeric fields are captured
// loosely so that out-of-range values can roll over instead of failing.
var dateFields = regexp.MustCompile(
	`^([A-Za-z]+),\s*(\d{1,2})\s+([A-Za-z]+)\s+(\d{1,4})\s+(\d{1,2}):(\d{1,2}):(\d{1,2})\s+([+-]\d{4}|GMT|UTC|Z)`)

var weekdays = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true, "fri": true, "sat": true, "sun": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "june": time.June, "july": time.July, "august": time.August,
	"september": time.September, "october": time.October, "november": time.November,
	"december": time.December,
}

// ParseDate parses value with DateFormat and returns the instant in UTC.
//
// Parsing is lenient in the same way tracker exports expect: day, hour,
// minute and second values past their range carry into the next unit
// ("32 Jan" is 1 Feb), the weekday name is not checked against the date
// and text following the zone is ignored.
func ParseDate(value string) (time.Time, error) {
	m := dateFields.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return time.Time{}, fmt.Errorf("%q does not match %q: %w", value, DateFormat, domain.ErrDateFormat)
	}
	if !weekdays[strings.ToLower(m[1])] {
		return time.Time{}, fmt.Errorf("%q: unknown weekday %q: %w", value, m[1], domain.ErrDateFormat)
	}
	month, ok := months[strings.ToLower(m[3])]
	if !ok {
		return time.Time{}, fmt.Errorf("%q: unknown month %q: %w", value, m[3], domain.ErrDateFormat)
	}

	// The regexp guarantees short digit runs, so Atoi cannot fail.
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[4])
	hour, _ := strconv.Atoi(m[5])
	minute, _ := strconv.Atoi(m[6])
	second, _ := strconv.Atoi(m[7])

	loc := time.FixedZone("", zoneOffset(m[8]))
	return time.Date(year, month, day, hour, minute, second, 0, loc).UTC(), nil
}

// zoneOffset converts "+hhmm", "-hhmm" or a UTC designator to seconds east of UTC.
func zoneOffset(zone string) int {
	if zone == "GMT" || zone == "UTC" || zone == "Z" {
		return 0
	}
	hours, _ := strconv.Atoi(zone[1:3])
	minutes, _ := strconv.Atoi(zone[3:5])
	offset := hours*3600 + minutes*60
	if zone[0] == '-' {
		return -offset
	}
	return offset
}
