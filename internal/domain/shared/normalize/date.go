// Package normalize holds the pure value normalizers used when assembling a
// unified order from loosely-typed input. None of these functions panic or
// return errors: unusable input collapses to a zero value and the caller
// decides whether that deserves a warning.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/erp/supplierorders/internal/domain/shared/fieldpath"
)

// ISODateLayout is the canonical date layout (YYYY-MM-DD).
const ISODateLayout = "2006-01-02"

var (
	isoDatePattern   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	isoPrefixPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})[T ]`)
	usSlashPattern   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)
	usDashPattern    = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{2,4})$`)
)

// textLayouts are tried in order for free-form date text.
var textLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2006/1/2",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	"Monday, January 2, 2006",
	"Mon, Jan 2, 2006",
	"Mon Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// Date canonicalizes v to YYYY-MM-DD, or "" when v cannot be read as a date.
//
// Accepted inputs: time.Time, ISO dates and timestamps, US slash and dash
// dates (M/D/YY[YY], M-D-YY[YY]), date-picker objects carrying formattedDate
// or year/month(0-based)/date, and common textual layouts. Two-digit years
// expand into the 2000s.
func Date(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.UTC().Format(ISODateLayout)
	case *time.Time:
		if val == nil {
			return ""
		}
		return Date(*val)
	case string:
		return dateFromString(val)
	case map[string]any:
		return dateFromPicker(val)
	default:
		return ""
	}
}

func dateFromString(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if m := isoDatePattern.FindStringSubmatch(raw); m != nil {
		return formatDateParts(m[1], m[2], m[3])
	}
	if m := isoPrefixPattern.FindStringSubmatch(raw); m != nil {
		return formatDateParts(m[1], m[2], m[3])
	}
	if m := usSlashPattern.FindStringSubmatch(raw); m != nil {
		return formatDateParts(expandYear(m[3]), m[1], m[2])
	}
	if m := usDashPattern.FindStringSubmatch(raw); m != nil {
		return formatDateParts(expandYear(m[3]), m[1], m[2])
	}

	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(ISODateLayout)
		}
	}
	return ""
}

// dateFromPicker reads the objects emitted by date-picker widgets:
// {formattedDate: "..."} or {year, month (0-based), date|day}.
func dateFromPicker(obj map[string]any) string {
	if formatted, ok := obj["formattedDate"]; ok && fieldpath.IsPresent(formatted) {
		return Date(formatted)
	}

	year, okYear := Int(obj["year"])
	month, okMonth := Int(obj["month"])
	if !okYear || !okMonth {
		return ""
	}
	day := int64(1)
	if d, ok := Int(obj["date"]); ok {
		day = d
	} else if d, ok := Int(obj["day"]); ok {
		day = d
	}
	t := time.Date(int(year), time.Month(month+1), int(day), 0, 0, 0, 0, time.UTC)
	return t.Format(ISODateLayout)
}

func expandYear(year string) string {
	if len(year) == 2 {
		return "20" + year
	}
	return year
}

func formatDateParts(year, month, day string) string {
	y, err := strconv.Atoi(year)
	if err != nil {
		return ""
	}
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 {
		return ""
	}
	if d < 1 || d > 31 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// IsISODate reports whether s is already in YYYY-MM-DD form.
func IsISODate(s string) bool {
	return isoDatePattern.MatchString(s)
}

// AddDays returns t shifted by days, formatted as YYYY-MM-DD in t's location.
func AddDays(t time.Time, days int) string {
	return t.AddDate(0, 0, days).Format(ISODateLayout)
}
