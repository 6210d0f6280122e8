package vff

import (
	"encoding/binary"
	"fmt"

	"github.com/aligator/vff/checkpoint"
)

// Variant is the width of the entries of an allocation table.
type Variant int

const (
	FAT12 Variant = iota
	FAT16
	FAT32
)

func (v Variant) String() string {
	switch v {
	case FAT12:
		return "FAT12"
	case FAT16:
		return "FAT16"
	case FAT32:
		return "FAT32"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

const (
	// maxFAT12Clusters is the last cluster count which still uses FAT12.
	maxFAT12Clusters = 0xFF5
	// maxFAT16Clusters is the last cluster count which still uses FAT16.
	// Anything above needs FAT32.
	maxFAT16Clusters = 0xFFF5

	fat12ReservedBase = 0xFF0
	fat16ReservedBase = 0xFFF0
)

// Class is the state a value of an allocation table entry stands for.
type Class int

const (
	// Available marks a free cluster.
	Available Class = iota
	// Used links to the next cluster of a chain.
	Used
	// Reserved values must never appear inside a chain.
	Reserved
	// Bad marks a defective cluster.
	Bad
	// Last terminates a chain.
	Last
)

func (c Class) String() string {
	switch c {
	case Available:
		return "available"
	case Used:
		return "used"
	case Reserved:
		return "reserved"
	case Bad:
		return "bad"
	case Last:
		return "last"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Table is a decoded, immutable FAT12 or FAT16 allocation table.
type Table struct {
	variant      Variant
	reservedBase uint16
	raw          []byte
}

// variantFor selects the table variant for the given number of clusters.
func variantFor(clusterCount uint32) (Variant, error) {
	switch {
	case clusterCount > maxFAT16Clusters:
		return FAT32, checkpoint.Wrap(fmt.Errorf("cluster count 0x%x requires FAT32", clusterCount), ErrUnsupportedFormat)
	case clusterCount > maxFAT12Clusters:
		return FAT16, nil
	default:
		return FAT12, nil
	}
}

// TableSize returns the number of bytes one allocation table occupies on the
// medium: enough bytes for clusterCount entries, padded to the next multiple
// of clusterSize.
func TableSize(clusterCount, clusterSize uint32) (int, error) {
	variant, err := variantFor(clusterCount)
	if err != nil {
		return 0, err
	}
	if clusterSize == 0 {
		return 0, checkpoint.Wrap(fmt.Errorf("cluster size is zero"), ErrCorruptHeader)
	}

	var size uint64
	if variant == FAT16 {
		size = uint64(clusterCount) * 2
	} else {
		size = (uint64(clusterCount) + 1) / 2 * 3
	}

	blocks := (size + uint64(clusterSize) - 1) / uint64(clusterSize)
	return int(blocks * uint64(clusterSize)), nil
}

// NewTable decodes raw as an allocation table for clusterCount clusters.
// raw is kept, so it must not be modified afterwards.
func NewTable(raw []byte, clusterCount uint32) (*Table, error) {
	variant, err := variantFor(clusterCount)
	if err != nil {
		return nil, err
	}

	t := &Table{
		variant: variant,
		raw:     raw,
	}
	if variant == FAT16 {
		t.reservedBase = fat16ReservedBase
	} else {
		t.reservedBase = fat12ReservedBase
	}

	first, err := t.Entry(0)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrCorruptHeader)
	}
	if c := t.Classify(first); c != Reserved {
		return nil, checkpoint.Wrap(fmt.Errorf("expected first entry to be reserved, found 0x%x (%v)", first, c), ErrCorruptHeader)
	}

	return t, nil
}

// Variant returns whether the table holds 12 or 16 bit entries.
func (t *Table) Variant() Variant {
	return t.variant
}

// Len returns the number of entries the decoded bytes can hold.
func (t *Table) Len() int {
	if t.variant == FAT16 {
		return len(t.raw) / 2
	}

	n := len(t.raw) / 3 * 2
	// A trailing partial group still holds a complete even entry.
	if len(t.raw)%3 == 2 {
		n++
	}
	return n
}

// Classify maps an entry value to the state it stands for.
// The five classes cover the whole value space of the variant.
func (t *Table) Classify(v uint16) Class {
	switch {
	case v == 0:
		return Available
	case v < t.reservedBase:
		return Used
	case v <= t.reservedBase+6:
		return Reserved
	case v == t.reservedBase+7:
		return Bad
	default:
		return Last
	}
}

// Entry returns the raw link value stored for the given cluster.
func (t *Table) Entry(index uint16) (uint16, error) {
	if int(index) >= t.Len() {
		return 0, checkpoint.Wrap(fmt.Errorf("cluster 0x%x outside of a table with %d entries", index, t.Len()), ErrChainCorruption)
	}

	if t.variant == FAT16 {
		off := int(index) * 2
		return binary.LittleEndian.Uint16(t.raw[off : off+2]), nil
	}

	// Two FAT12 entries share one group of three bytes.
	off := int(index) / 2 * 3
	if index&1 == 1 {
		return uint16(t.raw[off+1]>>4) | uint16(t.raw[off+2])<<4, nil
	}
	return uint16(t.raw[off]) | uint16(t.raw[off+1]&0xF)<<8, nil
}

// Chain follows the links starting at start and returns the clusters in
// order. The chain must be terminated by a value classified as Last.
func (t *Table) Chain(start uint16) ([]uint16, error) {
	var chain []uint16
	current := start
	for t.Classify(current) == Used {
		// A chain can not visit more clusters than the table has, unless it loops.
		if len(chain) >= t.Len() {
			return nil, checkpoint.Wrap(fmt.Errorf("cluster chain starting at 0x%x loops", start), ErrChainCorruption)
		}
		chain = append(chain, current)

		next, err := t.Entry(current)
		if err != nil {
			return nil, err
		}
		current = next
	}

	if c := t.Classify(current); c != Last {
		return nil, checkpoint.Wrap(fmt.Errorf("found 0x%04x (%v) in cluster chain starting at 0x%x", current, c, start), ErrChainCorruption)
	}

	return chain, nil
}
