package adf

import "fmt"

// InvalidFormat reports data that does not have the shape an ADF build
// expects, such as a boot block of the wrong size.
type InvalidFormat struct {
	Reason string
}

func (e InvalidFormat) Error() string {
	return "invalid format: " + e.Reason
}

// CapacityExceeded is returned when the laid out content does not fit on
// the disk. OverBy is the exact number of bytes past DiskSize.
type CapacityExceeded struct {
	OverBy int
}

func (e CapacityExceeded) Error() string {
	return fmt.Sprintf("disk is %d bytes over budget", e.OverBy)
}
