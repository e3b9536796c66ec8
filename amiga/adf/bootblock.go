package adf

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// Offset of the 32-bit checksum field inside the boot block.
const checksumOffset = 4

// InsertBootChecksum clears the checksum field of a boot block, computes the
// Amiga boot block checksum over all 256 longwords and stores it back into
// bytes 4-7. The block is modified in place.
func InsertBootChecksum(block []byte) error {
	if len(block) != BootBlockSize {
		return errors.WithStack(InvalidFormat{
			Reason: bootSizeReason(len(block)),
		})
	}

	binary.BigEndian.PutUint32(block[checksumOffset:], 0)
	binary.BigEndian.PutUint32(block[checksumOffset:], ^sumLongwords(block))

	return nil
}

// ValidBootChecksum reports whether the longword sum of the block, with
// end-around carry, is 0xFFFFFFFF.
func ValidBootChecksum(block []byte) bool {
	if len(block) != BootBlockSize {
		return false
	}
	return sumLongwords(block) == 0xFFFFFFFF
}

// BootChecksum returns the checksum stored in bytes 4-7 of the block.
func BootChecksum(block []byte) uint32 {
	return binary.BigEndian.Uint32(block[checksumOffset:])
}

// sumLongwords adds every big-endian longword of block, adding one back
// into the sum each time the addition wraps.
func sumLongwords(block []byte) uint32 {
	var sum uint32
	for i := 0; i+4 <= len(block); i += 4 {
		prev := sum
		sum += binary.BigEndian.Uint32(block[i:])
		if sum < prev {
			sum++
		}
	}
	return sum
}

func bootSizeReason(size int) string {
	return fmt.Sprintf("boot block must be %d bytes, got %d", BootBlockSize, size)
}
