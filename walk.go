package vff

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aligator/vff/checkpoint"
	"github.com/spf13/afero"
)

// ErrIllegalPath means an entry name can not be used as a path below the
// extraction root.
var ErrIllegalPath = errors.New("illegal path")

// WalkFunc is called for every entry visited by Walk. p is the "/" separated
// path of the entry starting with "/", parent the directory holding it.
// Returning an error stops the walk and Walk returns that error.
type WalkFunc func(p string, parent *Directory, e Entry) error

// Walk visits all entries below dir depth-first in the order they are stored.
// A directory is visited before its contents. "." and ".." are skipped.
// The first error, including decode errors, aborts the whole walk.
// A directory which links back to one of the directories above it fails with
// ErrChainCorruption.
func Walk(dir *Directory, fn WalkFunc) error {
	return walk(dir, "", map[uint16]bool{}, fn)
}

// walk visits dir. open holds the start clusters of the directories which are
// currently being walked.
func walk(dir *Directory, prefix string, open map[uint16]bool, fn WalkFunc) error {
	entries, err := dir.Entries()
	if err != nil {
		return err
	}

	for _, e := range entries {
		p := prefix + "/" + e.Name
		if err := fn(p, dir, e); err != nil {
			return err
		}
		if !e.IsDir() {
			continue
		}

		if open[e.StartCluster] {
			return checkpoint.Wrap(fmt.Errorf("directory %q links back to cluster 0x%x", p, e.StartCluster), ErrChainCorruption)
		}

		content, err := dir.Resolve(e)
		if err != nil {
			return err
		}

		open[e.StartCluster] = true
		err = walk(content.Dir, p, open, fn)
		delete(open, e.StartCluster)
		if err != nil {
			return err
		}
	}

	return nil
}

// Extract writes all files below dir into dst, rooted at root. Directories
// are created as needed, the tree structure is kept.
// There is no partial success: the first error aborts the extraction.
// Entry names which would lead outside of root fail with ErrIllegalPath.
func Extract(dir *Directory, dst afero.Fs, root string) error {
	root = filepath.Clean(root)
	if err := dst.MkdirAll(root, 0755); err != nil {
		return checkpoint.From(err)
	}

	return Walk(dir, func(p string, parent *Directory, e Entry) error {
		target, err := extractPath(root, p)
		if err != nil {
			return err
		}
		if e.IsDir() {
			return checkpoint.From(dst.MkdirAll(target, 0755))
		}

		content, err := parent.Resolve(e)
		if err != nil {
			return err
		}
		return checkpoint.From(afero.WriteFile(dst, target, content.Data, os.FileMode(0644)))
	})
}

// extractPath joins the walk path p to root and makes sure the result stays
// inside of root.
func extractPath(root, p string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(p))

	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", checkpoint.Wrap(err, ErrIllegalPath)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", checkpoint.Wrap(fmt.Errorf("%q leads outside of %q", p, root), ErrIllegalPath)
	}
	return target, nil
}
