package utils

import (
	"strings"
	"testing"
	"time"
)

func TestUUID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := UUID()
		if len(id) != 32 {
			t.Fatalf("uuid %q has length %d, want 32", id, len(id))
		}
		if strings.Contains(id, "-") {
			t.Fatalf("uuid %q contains dashes", id)
		}
		if seen[id] {
			t.Fatalf("uuid %q repeated", id)
		}
		seen[id] = true
	}
}

func TestGetDatesString(t *testing.T) {
	day := func(y int, m time.Month, d int) int64 {
		return time.Date(y, m, d, 12, 0, 0, 0, time.UTC).Unix()
	}
	tests := []struct {
		name string
		min  int64
		max  int64
		want string
	}{
		{"no dates", 0, 0, ""},
		{"missing max", day(2024, 6, 1), 0, ""},
		{"single day", day(2024, 6, 1), day(2024, 6, 1), "1 Jun 2024"},
		{"within a day", day(2024, 6, 1), day(2024, 6, 1) + 3600, "1 Jun 2024"},
		{"range", day(2024, 6, 1), day(2024, 8, 15), "1 Jun 2024 - 15 Aug 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetDatesString(tt.min, tt.max); got != tt.want {
				t.Errorf("GetDatesString(%d, %d) = %q, want %q", tt.min, tt.max, got, tt.want)
			}
		})
	}
}
