package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatRunTime renders a run time in seconds as [hh:][mm:]ss.mmm, dropping
// leading hour and minute fields while they are zero
func FormatRunTime(seconds float64) string {
	hours := int(seconds / 3600)
	minutes := int(math.Mod(seconds, 3600) / 60)
	rest := fmt.Sprintf("%06.3f", math.Mod(seconds, 60))

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%02d", hours))
	}
	if minutes > 0 || hours > 0 {
		parts = append(parts, fmt.Sprintf("%02d", minutes))
	}
	parts = append(parts, rest)

	return strings.Join(parts, ":")
}

// SeparateThousands floors n and groups its digits with commas
func SeparateThousands(n float64) string {
	digits := strconv.FormatInt(int64(math.Floor(n)), 10)

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}

// FormatTimestamp renders a submission or approval time; short drops the clock
func FormatTimestamp(t time.Time, short bool) string {
	if t.IsZero() {
		return "-"
	}
	if short {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}
