// Package inbox handles the certificate inbox directory: enumerating
// incoming documents, remembering which ones were already processed, and
// watching for new arrivals.
package inbox

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// certificateExtensions are the document types accepted from the inbox.
var certificateExtensions = map[string]struct{}{
	".pdf": {}, ".jpg": {}, ".jpeg": {}, ".png": {}, ".tiff": {}, ".bmp": {},
}

// IsCertificateFile reports whether a filename looks like a certificate
// document.
func IsCertificateFile(name string) bool {
	_, ok := certificateExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Scan lists certificate documents in dir, sorted by name for a stable
// processing order.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read inbox %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsCertificateFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
