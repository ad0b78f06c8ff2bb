package server

import "testing"

// TestFormatClock tests that the round timer is displayed as m:ss
func TestFormatClock(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "Full round", seconds: 100, want: "1:40"},
		{name: "Exact minute", seconds: 60, want: "1:00"},
		{name: "Single digit seconds", seconds: 9, want: "0:09"},
		{name: "Expired", seconds: 0, want: "0:00"},
		{name: "Negative clamps to zero", seconds: -3, want: "0:00"},
		{name: "Long round", seconds: 754, want: "12:34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatClock(tt.seconds); got != tt.want {
				t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}
