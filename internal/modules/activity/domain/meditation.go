package domain

import (
	"fmt"
	"time"
)

var presets = []int{1, 5, 10, 15, 20}

// Presets lists the selectable meditation lengths in minutes.
func Presets() []int {
	out := make([]int, len(presets))
	copy(out, presets)
	return out
}

func ValidPreset(minutes int) bool {
	for _, p := range presets {
		if p == minutes {
			return true
		}
	}
	return false
}

// FormatClock renders d as MM:SS, rounding partial seconds up.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
