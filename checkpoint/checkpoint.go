// Package checkpoint decorates errors with the location they passed through,
// building something close to a stacktrace while staying compatible with
// errors.Is and errors.As.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
)

// From records the caller's location on err.
// It returns nil if err is nil.
func From(err error) error {
	if err == nil {
		return nil
	}
	if passThrough(err) {
		return err
	}

	return &checkpoint{
		prev:   err,
		caller: caller(),
	}
}

// Wrap records the caller's location and attaches err as the reason for prev.
// Both can later be matched by errors.Is:
//  var ErrBadThing = errors.New("bad thing")
//
//  func do() error {
//  	err := somethingElse()
//  	return checkpoint.Wrap(err, ErrBadThing)
//  }
//
// Wrap returns nil if prev is nil.
func Wrap(prev, err error) error {
	if prev == nil {
		return nil
	}
	if passThrough(prev) {
		return prev
	}

	return &checkpoint{
		err:    err,
		prev:   prev,
		caller: caller(),
	}
}

// passThrough reports whether err has to reach the caller unwrapped.
// io.EOF is compared by identity throughout the standard library:
// https://github.com/golang/go/issues/39155
func passThrough(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}

func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

type checkpoint struct {
	err    error
	prev   error
	caller string
}

func (e *checkpoint) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%s: %v", e.caller, e.prev)
	}
	return fmt.Sprintf("%s: %v: %v", e.caller, e.err, e.prev)
}

func (e *checkpoint) Unwrap() error {
	return e.prev
}

func (e *checkpoint) Is(target error) bool {
	return e.err != nil && errors.Is(e.err, target)
}

func (e *checkpoint) As(target interface{}) bool {
	return e.err != nil && errors.As(e.err, target)
}
