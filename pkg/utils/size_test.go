package utils

import "testing"

func TestFormatDataSize(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{-1, "invalid"},
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{1073741824, "1.0 GB"},
	}

	for _, tt := range tests {
		if got := FormatDataSize(tt.input); got != tt.expected {
			t.Errorf("FormatDataSize(%d) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
