// Package archive assembles generated files into a single DEFLATE-compressed
// zip and computes export statistics.
package archive

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MykhailoOS/PortfolioLab/internal/site"
)

// compressionLevel balances size against speed; maximum ratio is not worth
// the extra time for image-heavy archives.
const compressionLevel = 6

// Stats describes a finished archive. Purely informational; never drives
// control flow.
type Stats struct {
	FileSize   int64 `json:"fileSize"`
	PageCount  int   `json:"pageCount"`
	AssetCount int   `json:"assetCount"`
}

// Build packages the files into a zip archive. Files are sorted by path
// first and entries carry a fixed timestamp, so two builds from identical
// inputs produce identical bytes. PageCount counts <locale>/index.html
// entries; AssetCount counts binary blobs.
func Build(files []site.File) ([]byte, Stats, error) {
	sorted := make([]site.File, len(files))
	copy(sorted, files)
	site.SortByPath(sorted)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, compressionLevel)
	})

	stats := Stats{}
	for _, f := range sorted {
		hdr := &zip.FileHeader{
			Name:     f.Path,
			Method:   zip.Deflate,
			Modified: time.Unix(0, 0).UTC(),
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("create archive entry %s: %w", f.Path, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, Stats{}, fmt.Errorf("write archive entry %s: %w", f.Path, err)
		}
		if f.Binary {
			stats.AssetCount++
		} else if isLocalePage(f.Path) {
			stats.PageCount++
		}
	}
	if err := zw.Close(); err != nil {
		return nil, Stats{}, fmt.Errorf("finalize archive: %w", err)
	}

	stats.FileSize = int64(buf.Len())
	return buf.Bytes(), stats, nil
}

// isLocalePage matches "<locale>/index.html" entries.
func isLocalePage(path string) bool {
	rest, ok := strings.CutSuffix(path, "/index.html")
	return ok && rest != "" && !strings.Contains(rest, "/")
}
