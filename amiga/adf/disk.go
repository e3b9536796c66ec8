package adf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Entry is a file table entry as stored on disk.
type Entry struct {
	Tag        [TagSize]byte
	Offset     int32
	PackedSize int32
	Size       int32
}

// ID is the entry tag without its space padding.
func (e Entry) ID() string {
	return strings.TrimRight(string(e.Tag[:]), " ")
}

// Disk is a parsed disk image. It keeps a reference to the image data.
type Disk struct {
	Boot       []byte
	DiskNumber int32
	Entries    []Entry

	image []byte
}

// Parse decodes the boot block and file table of image.
func Parse(image []byte) (*Disk, error) {
	if len(image) != DiskSize {
		return nil, errors.WithStack(InvalidFormat{
			Reason: fmt.Sprintf("disk image must be %d bytes, got %d", DiskSize, len(image)),
		})
	}

	d := &Disk{
		Boot:  image[:BootBlockSize],
		image: image,
	}

	reader := bytes.NewReader(image[BootBlockSize:])

	var head Entry
	if err := binary.Read(reader, binary.BigEndian, &head); err != nil {
		return nil, errors.Wrap(err, "file table read error")
	}
	if string(head.Tag[:]) != DiskNumberTag {
		return nil, errors.WithStack(InvalidFormat{
			Reason: fmt.Sprintf("file table must start with %q, got %q", DiskNumberTag, head.Tag[:]),
		})
	}
	if head.Offset != head.PackedSize || head.Offset != head.Size {
		return nil, errors.WithStack(InvalidFormat{
			Reason: fmt.Sprintf("disk number entry is inconsistent: %d/%d/%d", head.Offset, head.PackedSize, head.Size),
		})
	}
	d.DiskNumber = head.Offset

	// The table ends where the first item's data begins.
	tableEnd := DiskSize
	position := BootBlockSize + EntrySize
	for position+EntrySize <= tableEnd {
		entry := Entry{}
		err := binary.Read(reader, binary.BigEndian, &entry)
		if err != nil && err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "file table read error")
		}
		if entry.Tag == [TagSize]byte{} {
			break
		}
		position += EntrySize

		if offset := int(entry.Offset); offset >= position && offset < tableEnd {
			tableEnd = offset
		}
		d.Entries = append(d.Entries, entry)
	}

	return d, nil
}

// DataOffset is the absolute offset of the data region.
func (d *Disk) DataOffset() int {
	return BootBlockSize + (len(d.Entries)+1)*EntrySize
}

// Lookup returns the entry tagged id.
func (d *Disk) Lookup(id string) (Entry, bool) {
	tag := asciiField(id, TagSize)
	for _, e := range d.Entries {
		if bytes.Equal(e.Tag[:], tag) {
			return e, true
		}
	}
	return Entry{}, false
}

// File returns the data of the entry tagged id. The slice aliases the image.
func (d *Disk) File(id string) ([]byte, error) {
	e, ok := d.Lookup(id)
	if !ok {
		return nil, errors.Errorf("file %q not found", id)
	}
	start, end := int(e.Offset), int(e.Offset)+int(e.Size)
	if e.Size < 0 || start < 0 || end > len(d.image) {
		return nil, errors.WithStack(InvalidFormat{
			Reason: fmt.Sprintf("file %q spans 0x%X-0x%X, outside the disk", id, start, end),
		})
	}
	return d.image[start:end], nil
}

// Free returns the start and size of the unused space following the last
// item, computed the same way as the build report.
func (d *Disk) Free() (start, size int) {
	start = d.DataOffset()
	if n := len(d.Entries); n > 0 {
		last := d.Entries[n-1]
		start = int(last.Offset) + int(last.Size)
	}
	return start, DiskSize - start
}

// Layout reconstructs the layout the disk was built from.
func (d *Disk) Layout() Layout {
	l := Layout{
		DiskNumber: d.DiskNumber,
		TableSize:  (len(d.Entries) + 1) * EntrySize,
		DataOffset: d.DataOffset(),
		Items:      make([]Placement, len(d.Entries)),
	}
	for i, e := range d.Entries {
		l.Items[i] = Placement{
			ID:       e.ID(),
			Location: int(e.Offset) - l.DataOffset,
			Offset:   int(e.Offset),
			Size:     int(e.Size),
		}
	}
	return l
}

// Verify checks the boot checksum and the placement of every entry and
// returns a description of each problem found.
func (d *Disk) Verify() []string {
	var problems []string

	if !d.BootEmpty() && !ValidBootChecksum(d.Boot) {
		problems = append(problems, fmt.Sprintf("boot block checksum 0x%08X is invalid", BootChecksum(d.Boot)))
	}

	expected := d.DataOffset()
	for _, e := range d.Entries {
		start, end := int(e.Offset), int(e.Offset)+int(e.Size)
		switch {
		case e.Size < 0 || start < 0 || end > DiskSize:
			problems = append(problems, fmt.Sprintf("%s: 0x%X-0x%X is outside the disk", e.ID(), start, end))
		case start < expected:
			problems = append(problems, fmt.Sprintf("%s: starts at 0x%X, overlapping previous data ending at 0x%X", e.ID(), start, expected))
		case start > expected:
			problems = append(problems, fmt.Sprintf("%s: starts at 0x%X, leaving a gap after 0x%X", e.ID(), start, expected))
		}
		if e.PackedSize != packedSize {
			problems = append(problems, fmt.Sprintf("%s: packed size is %d, expected %d", e.ID(), e.PackedSize, packedSize))
		}
		expected = end
	}

	return problems
}

// BootEmpty reports whether the boot region is all zero, as written for a
// disk built without a boot block.
func (d *Disk) BootEmpty() bool {
	return isZero(d.Boot)
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// ADF is an Amiga disk file read from memory.
type ADF struct {
	data []byte
	disk *Disk
}

func New(data []byte) *ADF {
	return &ADF{data: data}
}

// Read the file table of the disk.
func (a *ADF) Read() error {
	disk, err := Parse(a.data)
	if err != nil {
		return err
	}
	a.disk = disk
	return nil
}

// Disk returns the parsed disk, nil until Read succeeds.
func (a *ADF) Disk() *Disk {
	return a.disk
}
