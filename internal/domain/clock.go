package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// FormatClock formats whole seconds as M:SS. Minutes are not padded;
// seconds always use two digits. Negative values keep a leading sign.
func FormatClock(seconds int) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%d:%02d", sign, seconds/60, seconds%60)
}

// SplitClock splits whole seconds into minutes and seconds, truncating
// toward zero so that minutes*60+seconds round-trips.
func SplitClock(seconds int) (int, int) {
	return seconds / 60, seconds % 60
}

// ParseClockFields converts the minute and second fields into whole
// seconds. Each field is read as a leading integer; anything unreadable
// counts as zero. No range checks are applied.
func ParseClockFields(minutes, seconds string) int {
	return parseLeadingInt(minutes)*60 + parseLeadingInt(seconds)
}

// parseLeadingInt reads an optional sign followed by digits from the start
// of s, after leading whitespace, and ignores whatever follows.
func parseLeadingInt(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
