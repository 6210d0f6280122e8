package vff

import (
	"os"
	"time"
)

// FileInfo returns the entry as os.FileInfo.
func (e Entry) FileInfo() os.FileInfo {
	return entryFileInfo{e}
}

type entryFileInfo struct {
	entry Entry
}

func (e entryFileInfo) Name() string {
	return e.entry.Name
}

func (e entryFileInfo) Size() int64 {
	if e.IsDir() {
		return 0
	}
	return int64(e.entry.Size)
}

func (e entryFileInfo) Mode() os.FileMode {
	mode := os.FileMode(0444)
	if e.IsDir() {
		mode |= os.ModeDir | 0111
	}
	return mode
}

// ModTime decodes the write date and time of the record.
// It is time.Time{} if the date is invalid.
func (e entryFileInfo) ModTime() time.Time {
	return dosTime(e.entry.Header.WriteDate, e.entry.Header.WriteTime)
}

func (e entryFileInfo) IsDir() bool {
	return e.entry.IsDir()
}

func (e entryFileInfo) Sys() interface{} {
	return e.entry
}

// rootFileInfo describes the root directory, which has no record of its own.
type rootFileInfo struct{}

func (rootFileInfo) Name() string       { return "/" }
func (rootFileInfo) Size() int64        { return 0 }
func (rootFileInfo) Mode() os.FileMode  { return os.ModeDir | 0555 }
func (rootFileInfo) ModTime() time.Time { return time.Time{} }
func (rootFileInfo) IsDir() bool        { return true }
func (rootFileInfo) Sys() interface{}   { return nil }
