package adf

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
)

func itemsOfSizes(sizes ...int) []Item {
	ids := []string{"AAAA", "BBBB", "CCCC", "DDDD", "EEEE"}
	items := make([]Item, len(sizes))
	for i, size := range sizes {
		items[i] = Item{ID: ids[i%len(ids)], Data: bytes.Repeat([]byte{byte(i + 1)}, size)}
	}
	return items
}

func TestNewLayoutLocations(t *testing.T) {
	m := &Manifest{DiskNumber: 1, Items: itemsOfSizes(10, 20, 30)}
	l := NewLayout(m)

	if l.TableSize != 64 {
		t.Fatalf("expected table size 64, got %d", l.TableSize)
	}
	if l.DataOffset != 0x440 {
		t.Fatalf("expected data offset 0x440, got 0x%X", l.DataOffset)
	}

	expected := []int{0, 10, 30}
	for i, p := range l.Items {
		if p.Location != expected[i] {
			t.Errorf("item %d: expected location %d, got %d", i, expected[i], p.Location)
		}
		if p.Offset != 0x440+expected[i] {
			t.Errorf("item %d: expected offset 0x%X, got 0x%X", i, 0x440+expected[i], p.Offset)
		}
	}
	if l.End() != 0x440+60 {
		t.Fatalf("expected end 0x%X, got 0x%X", 0x440+60, l.End())
	}
}

func TestAssemble(t *testing.T) {
	m := &Manifest{DiskNumber: 3, Items: itemsOfSizes(10, 20, 30)}

	build, err := Assemble(m)
	if err != nil {
		t.Fatal(err)
	}

	image := build.Image
	if len(image) != DiskSize {
		t.Fatalf("expected %d bytes, got %d", DiskSize, len(image))
	}
	if !isZero(image[:BootBlockSize]) {
		t.Fatal("boot region is not zero without a boot block")
	}

	table := image[BootBlockSize:]
	if string(table[0:4]) != DiskNumberTag {
		t.Fatalf("expected %q tag, got %q", DiskNumberTag, table[0:4])
	}
	for i := 0; i < 3; i++ {
		if v := binary.BigEndian.Uint32(table[4+i*4:]); v != 3 {
			t.Fatalf("disk number field %d is %d", i, v)
		}
	}

	first := table[EntrySize : 2*EntrySize]
	if string(first[0:4]) != "AAAA" {
		t.Fatalf("expected AAAA, got %q", first[0:4])
	}
	if off := binary.BigEndian.Uint32(first[4:]); off != 0x440 {
		t.Fatalf("expected first offset 0x440, got 0x%X", off)
	}
	if packed := binary.BigEndian.Uint32(first[8:]); packed != 0 {
		t.Fatalf("expected packed size 0, got %d", packed)
	}
	if size := binary.BigEndian.Uint32(first[12:]); size != 10 {
		t.Fatalf("expected size 10, got %d", size)
	}

	if !bytes.Equal(image[0x440+10:0x440+30], m.Items[1].Data) {
		t.Fatal("second item data misplaced")
	}
	if !isZero(image[0x440+60:]) {
		t.Fatal("padding is not zero")
	}
	if build.Free != DiskSize-0x440-60 {
		t.Fatalf("expected %d free bytes, got %d", DiskSize-0x440-60, build.Free)
	}
}

func TestAssembleBootBlock(t *testing.T) {
	boot := make([]byte, BootBlockSize)
	copy(boot, "DOS\x00")
	original := append([]byte(nil), boot...)

	build, err := Assemble(&Manifest{DiskNumber: 1, Boot: ProvidedBoot(boot), Items: itemsOfSizes(4)})
	if err != nil {
		t.Fatal(err)
	}

	region := build.Image[:BootBlockSize]
	if !ValidBootChecksum(region) {
		t.Fatal("boot region checksum does not verify")
	}
	if string(region[:4]) != "DOS\x00" {
		t.Fatal("boot block contents lost")
	}
	if !bytes.Equal(boot, original) {
		t.Fatal("caller boot block was modified")
	}
}

func TestAssembleBootBlockWrongSize(t *testing.T) {
	_, err := Assemble(&Manifest{Boot: ProvidedBoot(make([]byte, 512))})

	switch errors.Cause(err).(type) {
	case InvalidFormat:
	default:
		t.Fatalf("bad error: %v\nexpected InvalidFormat", err)
	}
}

func TestAssembleNoItems(t *testing.T) {
	build, err := Assemble(&Manifest{DiskNumber: 1})
	if err != nil {
		t.Fatal(err)
	}

	if len(build.Image) != DiskSize {
		t.Fatalf("expected %d bytes, got %d", DiskSize, len(build.Image))
	}
	if build.Layout.TableSize != EntrySize {
		t.Fatalf("expected table size %d, got %d", EntrySize, build.Layout.TableSize)
	}
	if build.Free != DiskSize-BootBlockSize-EntrySize {
		t.Fatalf("expected %d free bytes, got %d", DiskSize-BootBlockSize-EntrySize, build.Free)
	}
	start, size := build.Layout.Free()
	if start != BootBlockSize+EntrySize || size != build.Free {
		t.Fatalf("free space 0x%X/%d disagrees with build", start, size)
	}
}

func TestAssembleFillsDiskExactly(t *testing.T) {
	capacity := DiskSize - BootBlockSize - 2*EntrySize

	build, err := Assemble(&Manifest{Items: itemsOfSizes(capacity)})
	if err != nil {
		t.Fatal(err)
	}
	if build.Free != 0 || len(build.Image) != DiskSize {
		t.Fatalf("expected full disk, got %d free and %d bytes", build.Free, len(build.Image))
	}
}

func TestAssembleCapacityExceeded(t *testing.T) {
	capacity := DiskSize - BootBlockSize - 3*EntrySize

	for _, over := range []int{1, 5, 4096} {
		_, err := Assemble(&Manifest{Items: itemsOfSizes(capacity-100, 100+over)})

		switch e := errors.Cause(err).(type) {
		case CapacityExceeded:
			if e.OverBy != over {
				t.Errorf("expected %d bytes over, got %d", over, e.OverBy)
			}
		default:
			t.Fatalf("bad error: %v\nexpected CapacityExceeded", err)
		}
	}
}

func TestAssembleDoesNotShareState(t *testing.T) {
	m := &Manifest{DiskNumber: 1, Items: itemsOfSizes(8, 8)}

	a, err := Assemble(m)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Assemble(m)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(a.Image, b.Image) || a.Report != b.Report {
		t.Fatal("repeated builds differ")
	}
	a.Image[0x500] = 0xAA
	if b.Image[0x500] == 0xAA {
		t.Fatal("builds share an image buffer")
	}
}
