package cat

import (
	"fmt"
	"io"
	"sort"

	"adfbuild/amiga/adf"
)

type Catalog struct {
	DiskNumber int32
	FreeStart  int
	FreeSpace  int
	Records    []Record
}

// Record is the displayable data for a file table entry.
type Record struct {
	FileID string
	Offset int
	Size   int
	KBytes int // Size rounded up to the next Kbyte
}

// COMMAND: CAT
// Catalogs the disk. Lists every file table entry with its offset and length,
// in disk order or alpha-numeric order, followed by the disk number and the
// free space left on the disk.
func CommandCat(disk *adf.Disk, alphabetical bool) *Catalog {
	start, free := disk.Free()
	cat := &Catalog{
		DiskNumber: disk.DiskNumber,
		FreeStart:  start,
		FreeSpace:  free,
	}

	for _, e := range disk.Entries {
		cat.Records = append(cat.Records, Record{
			FileID: e.ID(),
			Offset: int(e.Offset),
			Size:   int(e.Size),
			KBytes: kbytes(int(e.Size)),
		})
	}

	if alphabetical {
		cat.alphabetize()
	}

	return cat
}

// Fprint writes the catalog as a listing.
func (c Catalog) Fprint(w io.Writer) {
	fmt.Fprintf(w, "Disk %d\n\n", c.DiskNumber)
	for _, r := range c.Records {
		fmt.Fprintf(w, "%-4s  0x%06X  %7d  %4dK\n", r.FileID, r.Offset, r.Size, r.KBytes)
	}
	fmt.Fprintf(w, "\n%d files, %d bytes free at 0x%06X\n", len(c.Records), c.FreeSpace, c.FreeStart)
}

func kbytes(size int) int {
	if size <= 0 {
		return 0
	}
	return (size + 1023) / 1024
}

func (c *Catalog) alphabetize() {
	sort.SliceStable(c.Records, func(i, j int) bool {
		return c.Records[i].FileID < c.Records[j].FileID
	})
}
