package export

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	// DisplayDateLayout labels a calendar day for date separators.
	DisplayDateLayout = "January 2, 2006"
	// TimeLabelLayout is the per-message stamp shown next to the sender.
	TimeLabelLayout = "2006-01-02 15:04"
)

var errEmptyTimestamp = errors.New("missing timestamp")

// Layouts without a zone are interpreted in the display location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses an export timestamp. It accepts RFC 3339, a few
// zone-less ISO-style layouts (read in loc), and Slack epoch strings such
// as "1716163200.000100".
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyTimestamp
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, ok := parseEpoch(s); ok {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized timestamp " + strconv.Quote(s))
}

// parseEpoch accepts "<seconds>" or "<seconds>.<fraction>".
func parseEpoch(s string) (time.Time, bool) {
	secPart, fracPart, hasFrac := strings.Cut(s, ".")
	if secPart == "" || !allDigits(secPart) || (hasFrac && (fracPart == "" || !allDigits(fracPart))) {
		return time.Time{}, false
	}
	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	var nsec int64
	if hasFrac {
		if len(fracPart) > 9 {
			fracPart = fracPart[:9]
		}
		fracPart += strings.Repeat("0", 9-len(fracPart))
		nsec, _ = strconv.ParseInt(fracPart, 10, 64)
	}
	return time.Unix(sec, nsec).UTC(), true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// DisplayDate returns the calendar-day label of t in loc.
func DisplayDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DisplayDateLayout)
}
