// Amiga disk media
package amiga

import "adfbuild/amiga/adf"

// Image is a readable Amiga media file.
type Image interface {
	Read() error
	Disk() *adf.Disk
}
