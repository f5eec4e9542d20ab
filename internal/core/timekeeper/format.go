package timekeeper

import (
	"fmt"
	"strings"
	"time"
)

const centisecond = 10 * time.Millisecond

type components struct {
	minutes      int64
	seconds      int64
	centiseconds int64
}

func split(elapsed time.Duration) components {
	if elapsed < 0 {
		elapsed = 0
	}
	total := int64(elapsed / centisecond)
	return components{
		minutes:      total / 6000,
		seconds:      (total / 100) % 60,
		centiseconds: total % 100,
	}
}

// FormatDisplay renders elapsed as MM:SS.CC. Minutes are not clamped.
func FormatDisplay(elapsed time.Duration) string {
	parts := split(elapsed)
	return fmt.Sprintf("%02d:%02d.%02d", parts.minutes, parts.seconds, parts.centiseconds)
}

// FormatSpoken renders elapsed as a phrase suitable for speech synthesis.
// The last component carries the centisecond digits under a "millisecond" label.
func FormatSpoken(elapsed time.Duration) string {
	parts := split(elapsed)

	phrases := make([]string, 0, 3)
	if parts.minutes > 0 {
		phrases = append(phrases, pluralize(parts.minutes, "minute"))
	}
	if parts.seconds > 0 {
		phrases = append(phrases, pluralize(parts.seconds, "second"))
	}
	if parts.centiseconds > 0 {
		phrases = append(phrases, pluralize(parts.centiseconds, "millisecond"))
	}
	if len(phrases) == 0 {
		return "0 seconds"
	}
	return strings.Join(phrases, ", ")
}

func pluralize(value int64, unit string) string {
	if value == 1 {
		return fmt.Sprintf("%d %s", value, unit)
	}
	return fmt.Sprintf("%d %ss", value, unit)
}
