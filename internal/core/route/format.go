package route

import (
	"fmt"
	"math"
	"strings"
)

// FormatDistance renders meters the way map services show them: "850 m", "12.3 km"
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	km := meters / 1000
	if km >= 100 {
		return fmt.Sprintf("%d km", int(math.Round(km)))
	}
	return fmt.Sprintf("%.1f km", km)
}

// FormatDuration renders seconds as "1 min", "42 mins", "1 hour 5 mins", "2 days 3 hours"
func FormatDuration(seconds float64) string {
	totalMins := int(math.Round(seconds / 60))
	if totalMins < 1 {
		totalMins = 1
	}

	days := totalMins / (24 * 60)
	hours := (totalMins % (24 * 60)) / 60
	mins := totalMins % 60

	var parts []string
	if days > 0 {
		parts = append(parts, plural(days, "day"))
		if hours > 0 {
			parts = append(parts, plural(hours, "hour"))
		}
		return strings.Join(parts, " ")
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if mins > 0 {
		parts = append(parts, plural(mins, "min"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
