package middleware

import (
	"strings"
	"testing"
)

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "stock market crash", "stock market crash", false},
		{"trims whitespace", "  etf basics  ", "etf basics", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"exactly 200", strings.Repeat("q", 200), strings.Repeat("q", 200), false},
		{"too long", strings.Repeat("q", 201), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateQuery(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"valid short", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"valid with dash", "abc-def_123", "abc-def_123", false},
		{"trims whitespace", "  abc  ", "abc", false},
		{"empty", "", "", true},
		{"too long", "12345678901234567", "", true},
		{"exactly 16", "1234567890123456", "1234567890123456", false},
		{"invalid chars", "abc def", "", true},
		{"sql injection", "a'; DROP--", "", true},
		{"unicode", "abcédef", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateVideoID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateGroup(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "india", "india", false},
		{"uppercase normalized", "USA", "usa", false},
		{"empty allowed", "", "", false},
		{"trims whitespace", " both ", "both", false},
		{"digits rejected", "group1", "", true},
		{"too long", strings.Repeat("a", 33), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateGroup(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateThumbnailURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"empty allowed", "", "", false},
		{"valid https", "https://i.ytimg.com/vi/abc/hqdefault.jpg", "https://i.ytimg.com/vi/abc/hqdefault.jpg", false},
		{"valid http", "http://example.com/a.jpg", "http://example.com/a.jpg", false},
		{"relative rejected", "/vi/abc/hqdefault.jpg", "", true},
		{"bad scheme", "ftp://example.com/a.jpg", "", true},
		{"not a url", "notaurl", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateThumbnailURL(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
