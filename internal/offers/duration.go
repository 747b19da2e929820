package offers

import (
	"regexp"
	"strconv"
	"strings"
)

var legacyDurationRe = regexp.MustCompile(`^(?:(\d+)\s*h)?\s*(?:(\d+)\s*min)?$`)

// ParseHours normalizes a user-entered duration string to decimal hours.
// Accepted forms: "H:MM" ("1:30" -> 1.5), plain decimal hours ("1", "0.75"),
// and the legacy "Nh Mmin" form ("2h 15min" -> 2.25). An empty or
// unparseable value yields 0 so a single malformed line item never blocks
// saving the rest of the record.
func ParseHours(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	if h, m, ok := splitClock(s); ok {
		return float64(h) + float64(m)/60
	}

	// decimal hours, comma tolerated as decimal separator
	if v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil && v >= 0 {
		return v
	}

	if m := legacyDurationRe.FindStringSubmatch(strings.ToLower(s)); m != nil && (m[1] != "" || m[2] != "") {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		return float64(hours) + float64(minutes)/60
	}

	return 0
}

func splitClock(s string) (hours, minutes int, ok bool) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return 0, 0, false
	}
	h, errH := strconv.Atoi(strings.TrimSpace(s[:i]))
	m, errM := strconv.Atoi(strings.TrimSpace(s[i+1:]))
	if errH != nil || errM != nil || h < 0 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// FormatHours renders normalized hours for form inputs, trimming trailing
// zeros ("1.5", "2", "0.25").
func FormatHours(hours float64) string {
	s := strconv.FormatFloat(hours, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
