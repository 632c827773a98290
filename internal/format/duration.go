package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders sub-millisecond durations in µs,
// sub-second ones in ms, and everything else with time.Duration.String.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}
