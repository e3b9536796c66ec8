// Amiga ADF disk image builder
//
// An image is a fixed 0xDC000 byte buffer: a 1024-byte boot block, a file
// table of 16-byte entries, the concatenated file data, then zero padding.
//
//   0x000 boot block (checksummed, or zeros)
//   0x400 "dsk#" entry, then one entry per item:
//         tag[4] offset(int32) packed size(int32) file size(int32)
//   ...   item data, in manifest order, no gaps
//   ...   zeros up to DiskSize
package adf

import (
	"github.com/pkg/errors"
)

const (
	// DiskSize is the exact size of every image, 880KB.
	DiskSize = 0xdc000

	// BootBlockSize is the size of the boot region at the start of the disk.
	BootBlockSize = 0x400

	// EntrySize is the size of a single file table entry.
	EntrySize = 16

	// TagSize is the width of the ASCII tag at the start of each entry.
	TagSize = 4

	// DiskNumberTag marks the leading file table entry.
	DiskNumberTag = "dsk#"

	// No compression is implemented, packed size is always zero.
	packedSize = 0
)

// BootSource is either a provided boot block or none.
type BootSource struct {
	data     []byte
	provided bool
}

// ProvidedBoot returns a BootSource holding data. The data is never modified
// by a build.
func ProvidedBoot(data []byte) BootSource {
	return BootSource{data: data, provided: true}
}

// NoBoot returns a BootSource for a disk with an all zero boot region.
func NoBoot() BootSource {
	return BootSource{}
}

func (b BootSource) Provided() bool {
	return b.provided
}

func (b BootSource) Bytes() []byte {
	return b.data
}

// Item is a single payload file.
type Item struct {
	ID   string
	Data []byte
}

// Manifest describes one disk build.
type Manifest struct {
	DiskNumber int32
	Boot       BootSource
	Items      []Item
}

// Placement is where an item lands on the disk.
type Placement struct {
	ID string

	// Location is relative to the start of the data region.
	Location int

	// Offset is the absolute disk offset written to the file table.
	Offset int
	Size   int
}

// Layout is the computed arrangement of a manifest on disk. It is shared by
// the image assembler and the report so the two never disagree.
type Layout struct {
	DiskNumber int32
	TableSize  int
	DataOffset int
	Items      []Placement
}

// NewLayout places the items of m one after another, in order, starting at
// the end of the file table. The manifest is not modified.
func NewLayout(m *Manifest) Layout {
	// First entry is the disk number, hence the + 1
	tableSize := (len(m.Items) + 1) * EntrySize
	l := Layout{
		DiskNumber: m.DiskNumber,
		TableSize:  tableSize,
		DataOffset: BootBlockSize + tableSize,
		Items:      make([]Placement, len(m.Items)),
	}

	location := 0
	for i, item := range m.Items {
		l.Items[i] = Placement{
			ID:       item.ID,
			Location: location,
			Offset:   l.DataOffset + location,
			Size:     len(item.Data),
		}
		location += len(item.Data)
	}

	return l
}

// End is the absolute offset just past the last item, or the start of the
// data region when there are no items.
func (l Layout) End() int {
	if len(l.Items) == 0 {
		return l.DataOffset
	}
	last := l.Items[len(l.Items)-1]
	return last.Offset + last.Size
}

// Free returns the start offset and size of the unused space at the end of
// the disk. size is negative when the layout does not fit.
func (l Layout) Free() (start, size int) {
	start = l.End()
	return start, DiskSize - start
}

// Build is the result of a successful Assemble.
type Build struct {
	Image  []byte
	Report string
	Layout Layout

	// Free is the number of zero bytes padding the end of the image.
	Free int
}

// Assemble lays out m and produces the complete disk image and its file
// table report. The boot block, if provided, is copied and checksummed; the
// manifest itself is left untouched.
func Assemble(m *Manifest) (*Build, error) {
	boot := make([]byte, BootBlockSize)
	if m.Boot.Provided() {
		if len(m.Boot.Bytes()) != BootBlockSize {
			return nil, errors.WithStack(InvalidFormat{
				Reason: bootSizeReason(len(m.Boot.Bytes())),
			})
		}
		copy(boot, m.Boot.Bytes())
		if err := InsertBootChecksum(boot); err != nil {
			return nil, err
		}
	}

	layout := NewLayout(m)

	w := NewWriter()
	w.WriteBytes(boot)

	w.WriteASCII(DiskNumberTag, TagSize)
	w.WriteInt32(m.DiskNumber)
	w.WriteInt32(m.DiskNumber)
	w.WriteInt32(m.DiskNumber)

	for _, p := range layout.Items {
		w.WriteASCII(p.ID, TagSize)
		w.WriteInt32(int32(p.Offset))
		w.WriteInt32(packedSize)
		w.WriteInt32(int32(p.Size))
	}

	for _, item := range m.Items {
		w.WriteBytes(item.Data)
	}

	spaceNeeded := DiskSize - w.Position()
	if spaceNeeded < 0 {
		return nil, errors.WithStack(CapacityExceeded{OverBy: -spaceNeeded})
	}
	w.WriteBytes(make([]byte, spaceNeeded))

	return &Build{
		Image:  w.Bytes(),
		Report: Report(layout),
		Layout: layout,
		Free:   spaceNeeded,
	}, nil
}
