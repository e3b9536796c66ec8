package adf

import (
	"fmt"
	"strings"
)

// Report renders l as a tab separated table with one row for the disk
// number, one per item and a trailing row for the free space.
func Report(l Layout) string {
	var sb strings.Builder

	sb.WriteString("FileID\tDisk Offset\tPackedSize\tFileSize\n")
	reportRow(&sb, DiskNumberTag, int(l.DiskNumber), int(l.DiskNumber), int(l.DiskNumber))

	for _, p := range l.Items {
		reportRow(&sb, string(asciiField(p.ID, TagSize)), p.Offset, packedSize, p.Size)
	}

	start, size := l.Free()
	reportRow(&sb, "Free", start, packedSize, size)

	return sb.String()
}

func reportRow(sb *strings.Builder, tag string, offset, packed, size int) {
	fmt.Fprintf(sb, "%s\t%08X\t%08X\t%08X\n", tag, uint32(offset), uint32(packed), uint32(size))
}
