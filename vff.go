// Package vff reads VFF containers: disk images which embed a FAT12 or FAT16
// file system behind a small big-endian header.
//
// Access is read-only. The container is decoded once by New and afterwards
// only read through positioned reads, so the medium is never modified.
package vff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/aligator/vff/checkpoint"
	"github.com/dsoprea/go-logging"
	"github.com/go-restruct/restruct"
)

// These errors may occur while decoding a container.
var (
	// ErrUnsupportedFormat means the volume has too many clusters for FAT16.
	ErrUnsupportedFormat = errors.New("unsupported format: FAT32 is not supported")
	// ErrCorruptHeader means the header or the start of an allocation table is invalid.
	ErrCorruptHeader = errors.New("corrupt header")
	// ErrChainCorruption means a cluster chain runs into a free, reserved or bad cluster.
	ErrChainCorruption = errors.New("corrupt cluster chain")
	// ErrNotFound means no directory entry matches a name.
	ErrNotFound = errors.New("not found")
)

var containerLogger = log.NewLogger("vff.container")

// Container is an opened VFF container.
type Container struct {
	header Header

	// primary is used for all chain lookups. backup is decoded but
	// otherwise unused.
	primary *Table
	backup  *Table

	root       *Directory
	dataOffset int64
	store      *clusterStore
}

// readRegion reads exactly size bytes at off.
func readRegion(r io.ReaderAt, off int64, size int, what string) ([]byte, error) {
	buf := make([]byte, size)
	n, err := r.ReadAt(buf, off)
	if n == size {
		return buf, nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return nil, checkpoint.From(fmt.Errorf("could not read %s at offset 0x%x (%d of %d bytes): %w", what, off, n, size, err))
}

// ParseHeader decodes the header from the start of a container.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < headerSize {
		return h, checkpoint.Wrap(fmt.Errorf("header needs %d bytes, got %d", headerSize, len(data)), ErrCorruptHeader)
	}
	if err := restruct.Unpack(data[:headerSize], binary.BigEndian, &h); err != nil {
		return h, checkpoint.Wrap(err, ErrCorruptHeader)
	}
	if h.ClusterUnit == 0 {
		return h, checkpoint.Wrap(errors.New("cluster size is zero"), ErrCorruptHeader)
	}
	return h, nil
}

// New decodes the container stored in r: the header, the primary and the
// backup allocation table and the root directory. Everything following the
// root directory is the cluster data region.
func New(r io.ReaderAt) (*Container, error) {
	var off int64

	slot, err := readRegion(r, off, headerSlotSize, "header")
	if err != nil {
		return nil, err
	}
	off += headerSlotSize

	header, err := ParseHeader(slot)
	if err != nil {
		return nil, err
	}
	clusterSize := header.ClusterSize()
	clusterCount := header.ClusterCount()

	containerLogger.Debugf(nil, "magic: %q", header.Magic[:])
	containerLogger.Debugf(nil, "volume size: 0x%x", header.VolumeSize)
	containerLogger.Debugf(nil, "cluster size: 0x%x", clusterSize)
	containerLogger.Debugf(nil, "cluster count: 0x%x", clusterCount)

	tableSize, err := TableSize(clusterCount, clusterSize)
	if err != nil {
		return nil, err
	}

	var tables [2]*Table
	for i, name := range []string{"primary allocation table", "backup allocation table"} {
		raw, err := readRegion(r, off, tableSize, name)
		if err != nil {
			return nil, err
		}
		off += int64(tableSize)

		tables[i], err = NewTable(raw, clusterCount)
		if err != nil {
			return nil, checkpoint.Wrap(err, fmt.Errorf("invalid %s", name))
		}
	}

	containerLogger.Debugf(nil, "FAT type: %v", tables[0].Variant())

	rootData, err := readRegion(r, off, rootDirectorySize, "root directory")
	if err != nil {
		return nil, err
	}
	off += rootDirectorySize

	containerLogger.Debugf(nil, "data offset: 0x%x", off)

	c := &Container{
		header:     header,
		primary:    tables[0],
		backup:     tables[1],
		dataOffset: off,
		store: &clusterStore{
			r:           r,
			base:        off,
			clusterSize: clusterSize,
			fat:         tables[0],
		},
	}
	c.root = newDirectory(c, rootData)

	return c, nil
}

// Header returns the decoded container header.
func (c *Container) Header() Header {
	return c.header
}

// Variant returns the type of the allocation tables.
func (c *Container) Variant() Variant {
	return c.primary.Variant()
}

// Primary returns the allocation table used to follow cluster chains.
func (c *Container) Primary() *Table {
	return c.primary
}

// Backup returns the second allocation table. It is never compared with the
// primary one.
func (c *Container) Backup() *Table {
	return c.backup
}

// Root returns the root directory.
func (c *Container) Root() *Directory {
	return c.root
}

// DataOffset returns the byte offset of cluster 2.
func (c *Container) DataOffset() int64 {
	return c.dataOffset
}

// ReadChain reads the clusters of the chain starting at start, following the
// primary allocation table.
func (c *Container) ReadChain(start uint16) ([]byte, error) {
	return c.store.ReadChain(start)
}
