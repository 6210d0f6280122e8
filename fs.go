package vff

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/aligator/vff/checkpoint"
	"github.com/spf13/afero"
)

// Fs exposes a Container as read-only afero.Fs.
// Paths are "/" separated and matched ignoring case. All modifying
// operations fail with syscall.EPERM.
type Fs struct {
	c *Container
}

// NewFs returns the afero view of c.
func NewFs(c *Container) *Fs {
	return &Fs{c: c}
}

// splitPath returns the components of a "/" separated path.
func splitPath(name string) []string {
	cleaned := strings.Trim(path.Clean("/"+filepath.ToSlash(name)), "/")
	if cleaned == "" {
		return nil
	}
	return strings.Split(cleaned, "/")
}

// locate finds the entry name points to together with the directory holding
// it. For the root directory ok is false.
func (fs *Fs) locate(name string) (parent *Directory, e Entry, ok bool, err error) {
	parts := splitPath(name)
	if len(parts) == 0 {
		return fs.c.Root(), Entry{}, false, nil
	}

	parent = fs.c.Root()
	for _, part := range parts[:len(parts)-1] {
		content, err := parent.Lookup(part)
		if err != nil {
			return nil, Entry{}, false, err
		}
		if content.Kind != KindDirectory {
			return nil, Entry{}, false, checkpoint.Wrap(syscall.ENOTDIR, fmt.Errorf("%q is not a directory", part))
		}
		parent = content.Dir
	}

	e, err = parent.find(parts[len(parts)-1])
	if err != nil {
		return nil, Entry{}, false, err
	}
	return parent, e, true, nil
}

// pathError converts err into the error afero and io/fs callers expect.
func pathError(op, name string, err error) error {
	if errors.Is(err, ErrNotFound) {
		err = checkpoint.Wrap(err, os.ErrNotExist)
	}
	return &os.PathError{Op: op, Path: name, Err: err}
}

func (fs *Fs) Open(name string) (afero.File, error) {
	parent, e, ok, err := fs.locate(name)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	if !ok {
		return newFile(name, rootFileInfo{}, Content{Kind: KindDirectory, Dir: parent}), nil
	}

	content, err := parent.Resolve(e)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	return newFile(name, e.FileInfo(), content), nil
}

// OpenFile only supports opening files for reading.
func (fs *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND) != 0 {
		return nil, pathError("open", name, syscall.EPERM)
	}
	return fs.Open(name)
}

func (fs *Fs) Stat(name string) (os.FileInfo, error) {
	_, e, ok, err := fs.locate(name)
	if err != nil {
		return nil, pathError("stat", name, err)
	}
	if !ok {
		return rootFileInfo{}, nil
	}
	return e.FileInfo(), nil
}

func (fs *Fs) Name() string {
	return "vff"
}

func (fs *Fs) Create(name string) (afero.File, error) {
	return nil, pathError("create", name, syscall.EPERM)
}

func (fs *Fs) Mkdir(name string, perm os.FileMode) error {
	return pathError("mkdir", name, syscall.EPERM)
}

func (fs *Fs) MkdirAll(path string, perm os.FileMode) error {
	return pathError("mkdir", path, syscall.EPERM)
}

func (fs *Fs) Remove(name string) error {
	return pathError("remove", name, syscall.EPERM)
}

func (fs *Fs) RemoveAll(path string) error {
	return pathError("remove", path, syscall.EPERM)
}

func (fs *Fs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: syscall.EPERM}
}

func (fs *Fs) Chmod(name string, mode os.FileMode) error {
	return pathError("chmod", name, syscall.EPERM)
}

func (fs *Fs) Chown(name string, uid, gid int) error {
	return pathError("chown", name, syscall.EPERM)
}

func (fs *Fs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return pathError("chtimes", name, syscall.EPERM)
}
