package vff

import (
	"testing"
	"time"
)

func TestDosTime(t *testing.T) {
	tests := []struct {
		name  string
		date  uint16
		clock uint16
		want  time.Time
	}{
		{
			name:  "start of the epoch",
			date:  0x0021,
			clock: 0x5401,
			want:  time.Date(1980, time.January, 1, 10, 32, 2, 0, time.UTC),
		},
		{
			name: "date only",
			date: 0x2B14,
			want: time.Date(2001, time.August, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "last representable year",
			date:  0xFF9F,
			clock: 0xBF7D,
			want:  time.Date(2107, time.December, 31, 23, 59, 58, 0, time.UTC),
		},
		{
			name:  "out of range time is clamped",
			date:  0x0021,
			clock: 0xFFFF,
			want:  time.Date(1980, time.January, 1, 23, 59, 58, 0, time.UTC),
		},
		{
			name: "day zero",
			date: 0x0020,
			want: time.Time{},
		},
		{
			name: "month zero",
			date: 0x0001,
			want: time.Time{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dosTime(tt.date, tt.clock); !got.Equal(tt.want) {
				t.Errorf("dosTime() = %v, want %v", got, tt.want)
			}
		})
	}
}
