package vff

import (
	"time"
)

// dosTime combines a DOS date and time stamp of a directory record.
//
// The date counts days (bits 0-4), months (bits 5-8) and years since 1980
// (bits 9-15). The time counts 2 second steps (bits 0-4), minutes (bits 5-10)
// and hours (bits 11-15).
//
// A day or month of 0 is invalid, in which case time.Time{} is returned so
// that IsZero() can be used. Out of range time fields are clamped to 23:59:58.
func dosTime(date, clock uint16) time.Time {
	day := int(date & 0x1F)
	month := int(date >> 5 & 0x0F)
	year := 1980 + int(date>>9)
	if day == 0 || month == 0 {
		return time.Time{}
	}

	seconds := int(clock&0x1F) * 2
	minutes := int(clock >> 5 & 0x3F)
	hours := int(clock >> 11)
	if hours > 23 || minutes > 59 || seconds > 58 {
		hours, minutes, seconds = 23, 59, 58
	}

	return time.Date(year, time.Month(month), day, hours, minutes, seconds, 0, time.UTC)
}
