package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// digitMap maps each clock character to a 5-line block glyph. Digits are
// 4 chars wide, the colon 1 and the minus sign 3.
var digitMap = map[rune][5]string{
	'0': {
		"████",
		"█  █",
		"█  █",
		"█  █",
		"████",
	},
	'1': {
		" █ ",
		"██ ",
		" █ ",
		" █ ",
		"███",
	},
	'2': {
		"████",
		"   █",
		"████",
		"█   ",
		"████",
	},
	'3': {
		"████",
		"   █",
		"████",
		"   █",
		"████",
	},
	'4': {
		"█  █",
		"█  █",
		"████",
		"   █",
		"   █",
	},
	'5': {
		"████",
		"█   ",
		"████",
		"   █",
		"████",
	},
	'6': {
		"████",
		"█   ",
		"████",
		"█  █",
		"████",
	},
	'7': {
		"████",
		"   █",
		"  █ ",
		" █  ",
		" █  ",
	},
	'8': {
		"████",
		"█  █",
		"████",
		"█  █",
		"████",
	},
	'9': {
		"████",
		"█  █",
		"████",
		"   █",
		"████",
	},
	'-': {
		"   ",
		"   ",
		"███",
		"   ",
		"   ",
	},
	':': {
		" ",
		"█",
		" ",
		"█",
		" ",
	},
}

// bigClockWidth is the narrowest window that fits the block clock.
const bigClockWidth = 40

// renderBigTime renders a clock string such as "14:32" in block glyphs.
// Narrow windows get a single bold line instead.
func renderBigTime(clock string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width > 0 && width < bigClockWidth {
		return style.Render(clock)
	}

	var lines [5]string
	for _, ch := range clock {
		glyph, ok := digitMap[ch]
		if !ok {
			continue
		}
		for i := range lines {
			if lines[i] != "" {
				lines[i] += " "
			}
			lines[i] += glyph[i]
		}
	}

	styled := make([]string, len(lines))
	for i, line := range lines {
		styled[i] = style.Render(line)
	}
	return strings.Join(styled, "\n")
}
