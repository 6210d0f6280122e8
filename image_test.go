package vff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"testing"
)

// testImage describes a synthetic container for tests.
type testImage struct {
	// clusterUnit is stored in the header, one unit is 16 bytes.
	clusterUnit  uint16
	clusterCount uint32

	// fat holds the allocation table entries by cluster number.
	fat map[int]uint16
	// root holds the records of the root directory.
	root [][]byte
	// clusters holds data by the cluster it starts in. Data longer than a
	// cluster continues in the following clusters.
	clusters map[uint16][]byte
}

// putFAT12 stores v as entry index of a packed FAT12 table.
func putFAT12(raw []byte, index int, v uint16) {
	off := index / 2 * 3
	if index%2 == 0 {
		raw[off] = byte(v)
		raw[off+1] = raw[off+1]&0xF0 | byte(v>>8)&0x0F
	} else {
		raw[off+1] = raw[off+1]&0x0F | byte(v<<4)
		raw[off+2] = byte(v >> 4)
	}
}

func (ti testImage) bytes(t *testing.T) []byte {
	t.Helper()

	clusterSize := int(ti.clusterUnit) * clusterUnitSize
	tableSize, err := TableSize(ti.clusterCount, uint32(clusterSize))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer

	header := make([]byte, headerSlotSize)
	copy(header, "VFF ")
	binary.BigEndian.PutUint32(header[4:], 0x00000100)
	binary.BigEndian.PutUint32(header[8:], ti.clusterCount*uint32(clusterSize))
	binary.BigEndian.PutUint16(header[12:], ti.clusterUnit)
	buf.Write(header)

	table := make([]byte, tableSize)
	for index, v := range ti.fat {
		if ti.clusterCount > maxFAT12Clusters {
			binary.LittleEndian.PutUint16(table[index*2:], v)
		} else {
			putFAT12(table, index, v)
		}
	}
	buf.Write(table)
	buf.Write(table)

	root := make([]byte, rootDirectorySize)
	for i, r := range ti.root {
		copy(root[i*entrySize:], r)
	}
	buf.Write(root)

	data := make([]byte, int(ti.clusterCount)*clusterSize)
	for index, c := range ti.clusters {
		copy(data[(int(index)-firstCluster)*clusterSize:], c)
	}
	buf.Write(data)

	return buf.Bytes()
}

// record builds a directory record.
func record(name, ext string, attr Attr, start uint16, size uint32) []byte {
	r := make([]byte, entrySize)
	copy(r[0:8], fmt.Sprintf("%-8s", name))
	copy(r[8:11], fmt.Sprintf("%-3s", ext))
	r[11] = byte(attr)
	binary.LittleEndian.PutUint16(r[26:], start)
	binary.LittleEndian.PutUint32(r[28:], size)
	return r
}

func deleted(r []byte) []byte {
	r[0] = entryDeleted
	return r
}

func records(rs ...[]byte) []byte {
	return bytes.Join(rs, nil)
}

// pattern returns n bytes which differ between clusters.
func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}

var (
	testInner   = []byte("hello")
	testFooBar  = pattern(700)
	testReadme  = []byte("abc")
	testDeepest = []byte("deep down")
)

// fat12Image is a small FAT12 container with 512 byte clusters:
//  /SUB/            cluster 2
//  /SUB/INNER.TXT   cluster 3
//  /SUB/DEEPER/     cluster 8
//  /SUB/DEEPER/X.Y  cluster 9
//  /FOO.BAR         clusters 4, 5
//  /EMPTY.TXT       no clusters
//  /README          cluster 7
// plus a deleted and a long filename record in the root directory.
func fat12Image() testImage {
	return testImage{
		clusterUnit:  32,
		clusterCount: 64,
		fat: map[int]uint16{
			0: 0xFF0,
			1: 0xFFF,
			2: 0xFFF,
			3: 0xFFF,
			4: 5,
			5: 0xFFF,
			7: 0xFF8,
			8: 0xFFF,
			9: 0xFFF,
		},
		root: [][]byte{
			record("SUB", "", AttrDirectory, 2, 0),
			record("FOO", "BAR", AttrArchive, 4, uint32(len(testFooBar))),
			deleted(record("GONE", "TXT", AttrArchive, 6, 10)),
			record("Ab", "cde", attrLongName, 0, 0),
			record("EMPTY", "TXT", AttrArchive, 0, 0),
			record("README", "", AttrReadOnly, 7, uint32(len(testReadme))),
		},
		clusters: map[uint16][]byte{
			2: records(
				record(".", "", AttrDirectory, 2, 0),
				record("..", "", AttrDirectory, 0, 0),
				record("INNER", "TXT", AttrArchive, 3, uint32(len(testInner))),
				record("DEEPER", "", AttrDirectory, 8, 0),
			),
			3: testInner,
			4: testFooBar,
			7: testReadme,
			8: records(
				record(".", "", AttrDirectory, 8, 0),
				record("..", "", AttrDirectory, 2, 0),
				record("X", "Y", AttrArchive, 9, uint32(len(testDeepest))),
			),
			9: testDeepest,
		},
	}
}

// openTestImage decodes ti and fails the test on errors.
func openTestImage(t *testing.T, ti testImage) *Container {
	t.Helper()

	c, err := New(bytes.NewReader(ti.bytes(t)))
	if err != nil {
		t.Fatal(err)
	}
	return c
}
