package cmd

import (
	"path/filepath"
	"strings"
)

// mediaType returns media when set, otherwise the lower case extension of
// filename without its dot.
func mediaType(media, filename string) string {
	if media != "" {
		return strings.ToLower(media)
	}
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}
