package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MykhailoOS/PortfolioLab/internal/portfolio"
)

// pngHeader is a minimal PNG signature, enough for content sniffing.
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func assetServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/avatar.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(pngHeader)
		case "/project.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("jpegdata"))
		case "/broken.png":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func docWithImages(avatarURL string, projectURLs ...string) *portfolio.Portfolio {
	projects := make([]portfolio.Project, len(projectURLs))
	for i, u := range projectURLs {
		projects[i] = portfolio.Project{
			ID:    "pr",
			Image: &portfolio.MediaRef{URL: u, Alt: "img"},
		}
	}
	return &portfolio.Portfolio{
		ID:             "p1",
		EnabledLocales: []portfolio.Locale{portfolio.LocaleEN},
		DefaultLocale:  portfolio.LocaleEN,
		Sections: []portfolio.Section{
			{ID: "about", Type: portfolio.SectionAbout, Data: &portfolio.AboutData{
				Avatar: &portfolio.MediaRef{URL: avatarURL, Alt: "me"},
			}},
			{ID: "projects", Type: portfolio.SectionProjects, Data: &portfolio.ProjectsData{
				Projects: projects,
			}},
		},
	}
}

func TestCollect_AssignsSequentialPaths(t *testing.T) {
	srv := assetServer(t)
	doc := docWithImages(srv.URL+"/avatar.png", srv.URL+"/project.jpg")

	assetMap, blobs := NewCollector().Collect(context.Background(), doc)

	require.Equal(t, "assets/img/avatar-0.png", assetMap[srv.URL+"/avatar.png"])
	require.Equal(t, "assets/img/project-1.jpg", assetMap[srv.URL+"/project.jpg"])
	require.Equal(t, pngHeader, blobs["assets/img/avatar-0.png"])
	require.Equal(t, []byte("jpegdata"), blobs["assets/img/project-1.jpg"])
}

func TestCollect_DeduplicatesSharedURL(t *testing.T) {
	requests := 0
	counting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngHeader)
	}))
	defer counting.Close()

	shared := counting.URL + "/shared.png"
	doc := docWithImages(shared, shared, shared)

	assetMap, blobs := NewCollector().Collect(context.Background(), doc)

	require.Equal(t, 1, requests, "shared URL downloaded once")
	require.Len(t, assetMap, 1)
	require.Len(t, blobs, 1)
	require.Equal(t, "assets/img/avatar-0.png", assetMap[shared])
}

func TestCollect_FailedDownloadSkipsWithoutGap(t *testing.T) {
	srv := assetServer(t)
	doc := docWithImages(srv.URL+"/broken.png", srv.URL+"/project.jpg")

	assetMap, blobs := NewCollector().Collect(context.Background(), doc)

	_, collected := assetMap[srv.URL+"/broken.png"]
	require.False(t, collected, "failed asset stays uncollected")
	// Counter only advances on success, so the project image is entry 0.
	require.Equal(t, "assets/img/project-0.jpg", assetMap[srv.URL+"/project.jpg"])
	require.Len(t, blobs, 1)
}

func TestMap_ResolveFallsBackToOriginalURL(t *testing.T) {
	m := Map{"https://cdn.example.com/a.png": "assets/img/avatar-0.png"}
	require.Equal(t, "assets/img/avatar-0.png", m.Resolve("https://cdn.example.com/a.png"))
	require.Equal(t, "https://cdn.example.com/b.png", m.Resolve("https://cdn.example.com/b.png"))
}

func TestInferExtension(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		data        []byte
		want        string
	}{
		{"content type wins", "https://x/y.png", "image/jpeg", nil, "jpg"},
		{"content type with charset", "https://x/y", "image/webp; charset=utf-8", nil, "webp"},
		{"svg", "https://x/y", "image/svg+xml", nil, "svg"},
		{"sniffed when untyped", "https://x/y", "", pngHeader, "png"},
		{"url extension fallback", "https://x/photo.GIF?v=2", "application/octet-stream", nil, "gif"},
		{"default jpg", "https://x/no-extension", "", nil, "jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, inferExtension(tt.url, tt.contentType, tt.data))
		})
	}
}
