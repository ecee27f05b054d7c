package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	mailhttp "github.com/mailsift/mailsift/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapSeeder_Discover_Urlset(t *testing.T) {
	t.Parallel()

	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%s/contact</loc></url>
  <url><loc>%s/about?ref=sitemap</loc></url>
  <url><loc>https://elsewhere.com/page</loc></url>
</urlset>`, srvURL, srvURL)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	srvURL = srv.URL

	s := mailhttp.NewSitemapSeeder(nil)
	urls, err := s.Discover(context.Background(), srv.URL+"/")

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/contact", srv.URL + "/about"}, urls,
		"same-host URLs only, canonicalized without query strings")
}

func TestSitemapSeeder_Discover_SitemapIndex(t *testing.T) {
	t.Parallel()

	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>%s/sitemap-a.xml</loc></sitemap>
  <sitemap><loc>%s/sitemap-b.xml</loc></sitemap>
</sitemapindex>`, srvURL, srvURL)
	})
	mux.HandleFunc("/sitemap-a.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<urlset><url><loc>%s/a</loc></url><url><loc>%s/shared</loc></url></urlset>`, srvURL, srvURL)
	})
	mux.HandleFunc("/sitemap-b.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<urlset><url><loc>%s/b</loc></url><url><loc>%s/shared</loc></url></urlset>`, srvURL, srvURL)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	srvURL = srv.URL

	s := mailhttp.NewSitemapSeeder(nil)
	urls, err := s.Discover(context.Background(), srv.URL+"/")

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{srv.URL + "/a", srv.URL + "/b", srv.URL + "/shared"}, urls,
		"child sitemap URLs merged with duplicates dropped")
}

func TestSitemapSeeder_Discover_MissingSitemapIsEmpty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := mailhttp.NewSitemapSeeder(nil)
	urls, err := s.Discover(context.Background(), srv.URL+"/")

	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestSitemapSeeder_Discover_MalformedXMLIsEmpty(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not xml <<<"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := mailhttp.NewSitemapSeeder(nil)
	urls, err := s.Discover(context.Background(), srv.URL+"/")

	require.NoError(t, err)
	assert.Empty(t, urls)
}
