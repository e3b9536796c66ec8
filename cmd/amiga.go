package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"adfbuild/amiga"
	"adfbuild/amiga/adf"
	"adfbuild/storage"
)

var amigaMediaType string

var amigaCmd = &cobra.Command{
	Use:   "amiga",
	Short: "Commodore Amiga disk images",
	Long:  `Create and inspect Commodore Amiga ADF disk images.`,
}

func init() {
	rootCmd.AddCommand(amigaCmd)
}

// openImage maps filename and reads it as the media type given by
// amigaMediaType or the file extension. The returned Mapped must be closed
// once the image is no longer used.
func openImage(filename string) (amiga.Image, *storage.Mapped, error) {
	mapped, err := storage.Open(filename)
	if err != nil {
		return nil, nil, err
	}

	var disk amiga.Image
	switch dskType := mediaType(amigaMediaType, filename); dskType {
	case "adf":
		disk = adf.New(mapped.Bytes())
	default:
		_ = mapped.Close()
		return nil, nil, errors.Errorf("unsupported media type: '%s'", dskType)
	}

	if err := disk.Read(); err != nil {
		_ = mapped.Close()
		return nil, nil, errors.Wrap(err, "storage read error")
	}

	return disk, mapped, nil
}
