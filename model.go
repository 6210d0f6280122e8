// File model contains the structs which match the on-disk structures of a VFF container.

package vff

const (
	// headerSlotSize is the space reserved for the header at the start of the container.
	headerSlotSize = 0x20
	// headerSize is the part of the header slot which carries data.
	headerSize = 0x10

	// rootDirectorySize is the fixed size of the root directory region.
	rootDirectorySize = 0x1000

	// entrySize is the size of one directory record.
	entrySize = 32

	// clusterUnitSize converts the stored cluster size unit into bytes.
	clusterUnitSize = 16

	// firstCluster is the number of the first cluster of the data region.
	firstCluster = 2
)

// Header is the big-endian container header.
type Header struct {
	Magic       [4]byte
	Version     uint32 `struct:"big"`
	VolumeSize  uint32 `struct:"big"`
	ClusterUnit uint16 `struct:"big"`
	Padding     [2]byte
}

// ClusterSize returns the size of one cluster in bytes.
func (h Header) ClusterSize() uint32 {
	return uint32(h.ClusterUnit) * clusterUnitSize
}

// ClusterCount returns how many clusters the volume holds.
// A trailing partial cluster is not counted.
func (h Header) ClusterCount() uint32 {
	size := h.ClusterSize()
	if size == 0 {
		return 0
	}
	return h.VolumeSize / size
}

// EntryHeader is one 32 byte directory record. Numeric fields are little-endian.
type EntryHeader struct {
	Name            [8]byte
	Ext             [3]byte
	Attribute       byte
	Reserved        byte
	CreateTimeTenth byte
	CreateTime      uint16 `struct:"little"`
	CreateDate      uint16 `struct:"little"`
	LastAccessDate  uint16 `struct:"little"`
	EAIndex         uint16 `struct:"little"`
	WriteTime       uint16 `struct:"little"`
	WriteDate       uint16 `struct:"little"`
	FirstCluster    uint16 `struct:"little"`
	FileSize        uint32 `struct:"little"`
}

// Attr is the attribute bitmask of a directory record.
type Attr uint8

const (
	AttrReadOnly    Attr = 0x01
	AttrHidden      Attr = 0x02
	AttrSystem      Attr = 0x04
	AttrVolumeLabel Attr = 0x08
	AttrDirectory   Attr = 0x10
	AttrArchive     Attr = 0x20
	AttrDevice      Attr = 0x40

	// attrLongName is set in the low nibble of long filename records.
	attrLongName Attr = 0x0F
)

// Has reports whether all bits of flag are set.
func (a Attr) Has(flag Attr) bool {
	return a&flag == flag
}

const (
	// entryDeleted as first name byte marks a deleted record.
	entryDeleted = 0xE5
	// entryFree as first name byte marks a record which was never used.
	entryFree = 0x00
)
