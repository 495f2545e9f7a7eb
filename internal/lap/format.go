package lap

import (
	"fmt"
	"math"
	"time"
)

// FormatTime renders a lap time as M:SS.mmm, e.g. 1:05.432.
func FormatTime(d time.Duration) string {
	seconds := d.Seconds()
	mins := int(math.Floor(math.Trunc(seconds) / 60))
	secs := seconds - float64(mins*60)
	return fmt.Sprintf("%d:%06.3f", mins, secs)
}

// FormatDelta renders a delta with an explicit sign and three decimals,
// e.g. +0.342 or -0.521. Zero is positive.
func FormatDelta(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%.3f", sign, math.Abs(d.Seconds()))
}
