// Package assets discovers, downloads and locally addresses the remote
// images referenced by a portfolio document. Collection is strictly
// sequential in document order so local filenames are deterministic.
package assets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/h2non/filetype"

	"github.com/MykhailoOS/PortfolioLab/internal/portfolio"
)

// Map maps an original remote URL to its relative path under assets/img/ in
// the exported archive. Built fresh on every export, never cached across
// runs.
type Map map[string]string

// Resolve returns the local path for url, or the original url when the
// asset was never collected (download failed or was skipped). Renderers use
// this so a missing asset degrades to the remote URL instead of failing the
// export.
func (m Map) Resolve(url string) string {
	if local, ok := m[url]; ok {
		return local
	}
	return url
}

// kind prefixes for generated asset filenames.
const (
	kindAvatar  = "avatar"
	kindProject = "project"
)

// Collector downloads remote images and assigns archive-local paths.
type Collector struct {
	client *http.Client
}

// Option configures a Collector.
type Option func(*Collector)

// WithHTTPClient overrides the HTTP client used for downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(col *Collector) { col.client = c }
}

// NewCollector creates a Collector with a 30 second download timeout.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{client: &http.Client{Timeout: 30 * time.Second}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect walks the document in order, downloads every distinct effective
// image once and returns the URL→path map plus the blob table keyed by local
// path. A failed download logs and skips that asset; reachability was
// already confirmed pre-flight, and a transient failure here must not abort
// packaging.
func (c *Collector) Collect(ctx context.Context, p *portfolio.Portfolio) (Map, map[string][]byte) {
	assetMap := make(Map)
	blobs := make(map[string][]byte)
	counter := 0

	collect := func(url, kind string) {
		if url == "" {
			return
		}
		if _, ok := assetMap[url]; ok {
			return
		}
		data, contentType, err := c.download(ctx, url)
		if err != nil {
			slog.Warn("failed to download asset, keeping remote URL", "url", url, "kind", kind, "error", err)
			return
		}
		ext := inferExtension(url, contentType, data)
		path := fmt.Sprintf("assets/img/%s-%d.%s", kind, counter, ext)
		counter++
		assetMap[url] = path
		blobs[path] = data
		slog.Debug("collected asset", "url", url, "path", path, "bytes", len(data))
	}

	for _, s := range p.Sections {
		switch data := s.Data.(type) {
		case *portfolio.AboutData:
			url, _ := data.EffectiveAvatar()
			collect(url, kindAvatar)
		case *portfolio.ProjectsData:
			for i := range data.Projects {
				url, _ := data.Projects[i].EffectiveImage()
				collect(url, kindProject)
			}
		}
	}
	return assetMap, blobs
}

// download fetches the asset bytes and reports the response content type.
func (c *Collector) download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// mimeToExt is the fixed MIME→extension table for downloaded images.
var mimeToExt = map[string]string{
	"image/jpeg":    "jpg",
	"image/jpg":     "jpg",
	"image/png":     "png",
	"image/webp":    "webp",
	"image/avif":    "avif",
	"image/gif":     "gif",
	"image/svg+xml": "svg",
}

var urlExtPattern = regexp.MustCompile(`(?i)\.([a-z0-9]+)(\?.*)?$`)

// inferExtension picks the local file extension: the response content type
// first, then content sniffing when the server sent no usable type, then the
// URL's trailing extension, defaulting to jpg.
func inferExtension(url, contentType string, data []byte) string {
	mt, _, _ := strings.Cut(contentType, ";")
	if ext, ok := mimeToExt[strings.TrimSpace(mt)]; ok {
		return ext
	}
	if mt == "" {
		if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
			if ext, ok := mimeToExt[kind.MIME.Value]; ok {
				return ext
			}
		}
	}
	if m := urlExtPattern.FindStringSubmatch(url); m != nil {
		return strings.ToLower(m[1])
	}
	return "jpg"
}
