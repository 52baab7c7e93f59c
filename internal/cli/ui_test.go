package cli

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{2468, "41:08"},
		{3600, "1:00:00"},
		{3661, "1:01:01"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatUnixTime(t *testing.T) {
	if got := formatUnixTime(0); got != "-" {
		t.Errorf("formatUnixTime(0) = %q, want -", got)
	}

	got := formatUnixTime(1700000000)
	if _, err := time.ParseInLocation("2006-01-02 15:04", got, time.Local); err != nil {
		t.Errorf("formatUnixTime() = %q, not in expected layout: %v", got, err)
	}
}

func TestFormatWinRate(t *testing.T) {
	tests := []struct {
		wins  int
		picks int
		want  string
	}{
		{0, 0, "-"},
		{1, 2, "50.0%"},
		{64, 120, "53.3%"},
		{0, 10, "0.0%"},
	}

	for _, tt := range tests {
		if got := formatWinRate(tt.wins, tt.picks); got != tt.want {
			t.Errorf("formatWinRate(%d, %d) = %q, want %q", tt.wins, tt.picks, got, tt.want)
		}
	}
}

func TestFormatSide(t *testing.T) {
	if got := formatSide(true); !strings.Contains(got, "Radiant") {
		t.Errorf("formatSide(true) = %q, want Radiant", got)
	}
	if got := formatSide(false); !strings.Contains(got, "Dire") {
		t.Errorf("formatSide(false) = %q, want Dire", got)
	}
}
