package model

import (
	"testing"
	"time"
)

func TestParseSearchMode(t *testing.T) {
	tests := []struct {
		input   string
		want    SearchMode
		wantErr bool
	}{
		{"", ModeGeneric, false},
		{"generic", ModeGeneric, false},
		{"grouped", ModeGrouped, false},
		{"GROUPED", "", true},
		{"channel", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSearchMode(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSearchMode(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSearchMode(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSearchMode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseTimeWindow(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeWindow
		wantErr bool
	}{
		{"", WindowNone, false},
		{"none", WindowNone, false},
		{"24h", Window24h, false},
		{"48h", Window48h, false},
		{"7d", Window7d, false},
		{"15d", Window15d, false},
		{"1m", Window1m, false},
		{"3d", "", true},
		{"1y", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTimeWindow(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeWindow(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeWindow(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeWindow(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTimeWindow_Since(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		window TimeWindow
		want   time.Time
	}{
		{WindowNone, time.Time{}},
		{Window24h, now.Add(-24 * time.Hour)},
		{Window48h, now.Add(-48 * time.Hour)},
		{Window7d, now.Add(-7 * 24 * time.Hour)},
		{Window15d, now.Add(-15 * 24 * time.Hour)},
		{Window1m, now.Add(-30 * 24 * time.Hour)},
	}
	for _, tt := range tests {
		if got := tt.window.Since(now); !got.Equal(tt.want) {
			t.Errorf("Since(%q) = %v, want %v", tt.window, got, tt.want)
		}
	}
}
