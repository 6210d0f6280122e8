package vff

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/aligator/vff/checkpoint"
	"github.com/spf13/afero"
)

// These errors may occur while processing a file.
var (
	ErrReadFile = errors.New("could not read file completely")
	ErrSeekFile = errors.New("could not seek inside of the file")
	ErrReadDir  = errors.New("could not read the directory")
)

// File is an opened file or directory of a Container.
// The content of a file is read completely when it is opened.
// File is not safe for concurrent use.
type File struct {
	path string
	stat os.FileInfo

	data []byte
	dir  *Directory

	closed bool
	offset int64
}

func newFile(path string, stat os.FileInfo, content Content) *File {
	return &File{
		path: path,
		stat: stat,
		data: content.Data,
		dir:  content.Dir,
	}
}

func (f *File) Close() error {
	if f.closed {
		return afero.ErrFileClosed
	}

	f.closed = true
	f.data = nil
	f.dir = nil
	f.offset = 0

	return nil
}

func (f *File) Read(p []byte) (n int, err error) {
	if f.closed {
		return 0, afero.ErrFileClosed
	}
	if f.stat.IsDir() {
		return 0, checkpoint.Wrap(syscall.EISDIR, ErrReadFile)
	}
	if len(p) == 0 {
		return 0, nil
	}

	// Reading a file if the size has been already reached, makes no sense.
	if f.offset >= int64(len(f.data)) {
		return 0, io.EOF
	}

	n = copy(p, f.data[f.offset:])
	f.offset += int64(n)
	return n, nil
}

func (f *File) ReadAt(p []byte, off int64) (n int, err error) {
	if f.closed {
		return 0, afero.ErrFileClosed
	}
	if f.stat.IsDir() {
		return 0, checkpoint.Wrap(syscall.EISDIR, ErrReadFile)
	}
	if off < 0 {
		return 0, checkpoint.Wrap(fmt.Errorf("%w, offset: %v", syscall.EINVAL, off), ErrReadFile)
	}

	// Reading over the end makes no sense.
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}

	n = copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Seek jumps to a specific offset in the file. This affects all Read operation except ReadAt.
// May return a syscall.EINVAL error if the whence value is invalid.
// May return an afero.ErrOutOfRange error if the offset is out of range.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, afero.ErrFileClosed
	}

	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset = f.offset + offset
	case io.SeekEnd:
		offset = int64(len(f.data)) + offset
	default:
		return 0, checkpoint.Wrap(ErrSeekFile, fmt.Errorf("%w, offset: %v, whence: %v", syscall.EINVAL, offset, whence))
	}

	if offset < 0 || offset > int64(len(f.data)) {
		return 0, checkpoint.Wrap(afero.ErrOutOfRange, fmt.Errorf("%w, offset: %v, whence: %v", ErrSeekFile, offset, whence))
	}

	f.offset = offset
	return offset, nil
}

func (f *File) Write(p []byte) (n int, err error) {
	return 0, syscall.EPERM
}

func (f *File) WriteAt(p []byte, off int64) (n int, err error) {
	return 0, syscall.EPERM
}

func (f *File) WriteString(s string) (ret int, err error) {
	return f.Write([]byte(s))
}

func (f *File) Sync() error {
	return syscall.EPERM
}

func (f *File) Truncate(size int64) error {
	return syscall.EPERM
}

func (f *File) Name() string {
	return f.path
}

// Readdir reads the contents of a directory.
// With count > 0 at most count entries are returned and io.EOF once there
// are none left. With count <= 0 all remaining entries are returned.
// May return syscall.ENOTDIR if the current File is no directory.
func (f *File) Readdir(count int) ([]os.FileInfo, error) {
	if f.closed {
		return nil, afero.ErrFileClosed
	}
	if f.dir == nil {
		return nil, checkpoint.Wrap(syscall.ENOTDIR, ErrReadDir)
	}

	entries, err := f.dir.Entries()
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrReadDir)
	}

	// For directories the offset counts the entries already returned.
	start := int(f.offset)
	if start > len(entries) {
		start = len(entries)
	}
	end := len(entries)
	if count > 0 {
		if start == end {
			return nil, io.EOF
		}
		if start+count < end {
			end = start + count
		}
	}
	f.offset = int64(end)

	result := make([]os.FileInfo, 0, end-start)
	for _, e := range entries[start:end] {
		result = append(result, e.FileInfo())
	}
	return result, nil
}

func (f *File) Readdirnames(count int) ([]string, error) {
	content, err := f.Readdir(count)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(content))
	for i, entry := range content {
		names[i] = entry.Name()
	}

	return names, nil
}

func (f *File) Stat() (os.FileInfo, error) {
	if f.closed {
		return nil, afero.ErrFileClosed
	}
	return f.stat, nil
}
