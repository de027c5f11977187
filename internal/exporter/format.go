package exporter

import (
	"fmt"
	"strconv"
)

// formatFloat formats a float64 value for output with 4 decimal places.
// Per-capita emission values are small, so 2 places would round most of
// the table away.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// formatInt formats an int value for output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
