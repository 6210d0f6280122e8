package vff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/aligator/vff/checkpoint"
	"github.com/go-restruct/restruct"
)

// volume provides all methods needed from a Container for a Directory.
// It mainly exists to be able to mock the Container in tests.
// Generated mock using mockgen:
//  mockgen -source=directory.go -destination=volume_mock.go -package vff
type volume interface {
	ReadChain(start uint16) ([]byte, error)
	Root() *Directory
}

// Entry is one decoded directory record.
type Entry struct {
	// Name is the display name: "NAME.EXT", or "NAME" without extension.
	Name         string
	Attr         Attr
	StartCluster uint16
	Size         uint32

	// Header is the record the entry was decoded from, including the
	// timestamps which are not interpreted otherwise.
	Header EntryHeader
}

// IsDir reports whether the entry describes a directory.
func (e Entry) IsDir() bool {
	return e.Attr.Has(AttrDirectory)
}

// IsDot reports whether the entry is the "." or ".." link of a directory.
func (e Entry) IsDot() bool {
	return e.Name == "." || e.Name == ".."
}

// displayName joins the space padded name and extension of a record.
func displayName(h EntryHeader) string {
	name := strings.TrimRight(string(h.Name[:]), " ") + "." + strings.TrimRight(string(h.Ext[:]), " ")
	return strings.TrimSuffix(name, ".")
}

// Decode parses buf as a sequence of 32 byte directory records.
// Deleted, unused and long filename records are skipped.
// A trailing fragment shorter than a record is ignored.
func Decode(buf []byte) ([]Entry, error) {
	var entries []Entry
	for off := 0; off+entrySize <= len(buf); off += entrySize {
		record := buf[off : off+entrySize]
		if record[0] == entryDeleted || record[0] == entryFree {
			continue
		}

		var h EntryHeader
		if err := restruct.Unpack(record, binary.LittleEndian, &h); err != nil {
			return nil, checkpoint.From(fmt.Errorf("could not decode directory record at 0x%x: %w", off, err))
		}

		attr := Attr(h.Attribute)
		if attr&attrLongName == attrLongName {
			continue
		}

		entries = append(entries, Entry{
			Name:         displayName(h),
			Attr:         attr,
			StartCluster: h.FirstCluster,
			Size:         h.FileSize,
			Header:       h,
		})
	}

	return entries, nil
}

// Kind tells which of the fields of a Content is set.
type Kind int

const (
	// KindEmpty is a file without any data.
	KindEmpty Kind = iota
	// KindFile is a file, its bytes are in Content.Data.
	KindFile
	// KindDirectory is a directory, it is in Content.Dir.
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Content is what an Entry resolves to.
type Content struct {
	Kind Kind
	Data []byte
	Dir  *Directory
}

// Directory is a list of records backed by an immutable buffer, either the
// root directory region or the clusters of a subdirectory.
// Nothing is cached: each call decodes the buffer again and every resolved
// subdirectory or file is read from the medium again.
type Directory struct {
	vol  volume
	data []byte
}

func newDirectory(vol volume, data []byte) *Directory {
	return &Directory{
		vol:  vol,
		data: data,
	}
}

// Entries returns the entries of the directory without "." and "..".
func (d *Directory) Entries() ([]Entry, error) {
	all, err := Decode(d.data)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(all))
	for _, e := range all {
		if e.IsDot() {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Resolve reads what e points to. Directories other than "." and ".." become a
// Directory, files their bytes cut to the exact size of the entry.
// A file whose chain holds fewer bytes than its size fails with ErrChainCorruption.
func (d *Directory) Resolve(e Entry) (Content, error) {
	if e.IsDir() && !e.IsDot() {
		data, err := d.vol.ReadChain(e.StartCluster)
		if err != nil {
			return Content{}, checkpoint.Wrap(err, fmt.Errorf("could not read directory %q", e.Name))
		}
		return Content{Kind: KindDirectory, Dir: newDirectory(d.vol, data)}, nil
	}

	if e.Size == 0 {
		return Content{Kind: KindEmpty}, nil
	}

	data, err := d.vol.ReadChain(e.StartCluster)
	if err != nil {
		return Content{}, checkpoint.Wrap(err, fmt.Errorf("could not read file %q", e.Name))
	}
	if uint64(len(data)) < uint64(e.Size) {
		return Content{}, checkpoint.Wrap(fmt.Errorf("file %q needs %d bytes but its chain holds %d", e.Name, e.Size, len(data)), ErrChainCorruption)
	}

	return Content{Kind: KindFile, Data: data[:e.Size]}, nil
}

// find returns the first entry matching name, ignoring case.
func (d *Directory) find(name string) (Entry, error) {
	all, err := Decode(d.data)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range all {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return Entry{}, checkpoint.Wrap(fmt.Errorf("no entry named %q", name), ErrNotFound)
}

// Lookup resolves the entry called name, ignoring case.
// "." resolves to d itself and ".." to the parent directory, if d has
// these entries.
func (d *Directory) Lookup(name string) (Content, error) {
	e, err := d.find(name)
	if err != nil {
		return Content{}, err
	}

	switch {
	case e.Name == ".":
		return Content{Kind: KindDirectory, Dir: d}, nil
	case e.Name == ".." && e.StartCluster == 0:
		// The parent is the root directory, which has no cluster chain.
		return Content{Kind: KindDirectory, Dir: d.vol.Root()}, nil
	case e.Name == "..":
		data, err := d.vol.ReadChain(e.StartCluster)
		if err != nil {
			return Content{}, checkpoint.Wrap(err, errors.New("could not read parent directory"))
		}
		return Content{Kind: KindDirectory, Dir: newDirectory(d.vol, data)}, nil
	}

	return d.Resolve(e)
}
