package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{1500, "25:00"},
		{300, "5:00"},
		{425, "7:05"},
		{59, "0:59"},
		{0, "0:00"},
		{3600, "60:00"},
		{-61, "-1:01"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(tt.seconds))
		})
	}
}

func TestSplitClock(t *testing.T) {
	m, s := SplitClock(425)
	assert.Equal(t, 7, m)
	assert.Equal(t, 5, s)

	m, s = SplitClock(-61)
	assert.Equal(t, -61, m*60+s)
}

func TestParseClockFields(t *testing.T) {
	tests := []struct {
		name    string
		minutes string
		seconds string
		want    int
	}{
		{"plain", "7", "5", 425},
		{"empty", "", "", 0},
		{"minutes only", "3", "", 180},
		{"garbage", "abc", "x1", 0},
		{"trailing text", "7min", "5s", 425},
		{"leading space", " 2", "\t10", 130},
		{"negative", "-1", "0", -60},
		{"explicit plus", "+1", "+1", 61},
		{"decimal truncates", "1.9", "30", 90},
		{"seconds overflow", "0", "75", 75},
		{"sign only", "-", "+", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseClockFields(tt.minutes, tt.seconds))
		})
	}
}
