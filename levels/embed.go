// Package levels embeds the bundled level files.
package levels

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var FS embed.FS

// Load reads a level from disk, falling back to the embedded copy so the
// binary runs from any working directory.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if embedded, embErr := FS.ReadFile(clean(path)); embErr == nil {
		return embedded, nil
	}
	return nil, err
}

func clean(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		return after
	}
	return filepath.Base(s)
}
