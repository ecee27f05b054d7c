package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/mailsift/mailsift/cmd/mailsift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMain returns a Main backed by a database under dir.
func newTestMain(dir string) *main.Main {
	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "test.db")
	return m
}

// newTestSite serves a small site with one plain and one obfuscated
// email across two pages.
func newTestSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><head><title>Home</title></head><body>
			<p>Reach us at info@example.com</p>
			<a href="/contact">Contact</a>
		</body></html>`))
	})
	mux.HandleFunc("/contact", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Contact</title></head><body>
			<p>Sales: sales [at] example [dot] com</p>
		</body></html>`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := newTestMain(t.TempDir())
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := newTestMain(t.TempDir())
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range []string{"crawl", "runs", "export"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
}

func TestMain_Run_UnknownCommand(t *testing.T) {
	t.Parallel()

	m := newTestMain(t.TempDir())
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"bogus"}, stdout, stderr)
	require.Error(t, err)
}

func TestCmdCrawl(t *testing.T) {
	t.Parallel()

	t.Run("crawls, exports, and stores results", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		dir := t.TempDir()
		csvPath := filepath.Join(dir, "out.csv")

		m := newTestMain(dir)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(),
			[]string{"crawl", srv.URL, "-o", csvPath, "--quiet", "-m", "10", "-w", "4"},
			stdout, stderr)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "found info@example.com")
		assert.Contains(t, output, "found sales@example.com")
		assert.Contains(t, output, "Scanned 2 pages")
		assert.Contains(t, output, "found 2 emails")
		assert.Contains(t, output, "Wrote "+csvPath)
		assert.Contains(t, output, "Saved crawl ")

		content, err := os.ReadFile(csvPath)
		require.NoError(t, err)
		csv := string(content)
		assert.True(t, strings.HasPrefix(csv, "Email,Page URL,Page Title\n"))
		assert.Contains(t, csv, "info@example.com")
		assert.Contains(t, csv, "sales@example.com")
		assert.Contains(t, csv, "Contact")
	})

	t.Run("quiet suppresses per-page lines", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		dir := t.TempDir()

		m := newTestMain(dir)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(),
			[]string{"crawl", srv.URL, "-o", filepath.Join(dir, "out.csv"), "--quiet"},
			stdout, stderr)
		require.NoError(t, err)
		assert.NotContains(t, stderr.String(), "scanned")
	})

	t.Run("max pages limits the crawl", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		dir := t.TempDir()

		m := newTestMain(dir)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(),
			[]string{"crawl", srv.URL, "-o", filepath.Join(dir, "out.csv"), "--quiet", "-m", "1"},
			stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Scanned 1 pages")
		assert.NotContains(t, stdout.String(), "sales@example.com")
	})

	t.Run("rejects URL without host", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t.TempDir())
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"crawl", "not-a-url"}, stdout, stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestCmdRuns(t *testing.T) {
	t.Parallel()

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t.TempDir())
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"runs"}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No crawls found")
	})

	t.Run("lists stored crawls", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		dir := t.TempDir()

		crawlMain := newTestMain(dir)
		err := crawlMain.Run(context.Background(),
			[]string{"crawl", srv.URL, "-o", filepath.Join(dir, "out.csv"), "--quiet"},
			&bytes.Buffer{}, &bytes.Buffer{})
		require.NoError(t, err)

		m := newTestMain(dir)
		stdout := &bytes.Buffer{}

		err = m.Run(context.Background(), []string{"runs"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), srv.URL)
		assert.Contains(t, stdout.String(), "2 pages")
		assert.Contains(t, stdout.String(), "2 emails")
	})

	t.Run("shows one crawl's records", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		dir := t.TempDir()

		crawlOut := &bytes.Buffer{}
		crawlMain := newTestMain(dir)
		err := crawlMain.Run(context.Background(),
			[]string{"crawl", srv.URL, "-o", filepath.Join(dir, "out.csv"), "--quiet"},
			crawlOut, &bytes.Buffer{})
		require.NoError(t, err)

		id := savedCrawlID(t, crawlOut.String())

		m := newTestMain(dir)
		stdout := &bytes.Buffer{}

		err = m.Run(context.Background(), []string{"runs", id}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), srv.URL)
		assert.Contains(t, stdout.String(), "info@example.com")
		assert.Contains(t, stdout.String(), "sales@example.com")
	})

	t.Run("unknown crawl ID", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t.TempDir())
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"runs", "does-not-exist"}, stdout, stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestCmdExport(t *testing.T) {
	t.Parallel()

	t.Run("exports a stored crawl", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		dir := t.TempDir()

		crawlOut := &bytes.Buffer{}
		crawlMain := newTestMain(dir)
		err := crawlMain.Run(context.Background(),
			[]string{"crawl", srv.URL, "-o", filepath.Join(dir, "first.csv"), "--quiet"},
			crawlOut, &bytes.Buffer{})
		require.NoError(t, err)

		id := savedCrawlID(t, crawlOut.String())
		exportPath := filepath.Join(dir, "export.csv")

		m := newTestMain(dir)
		stdout := &bytes.Buffer{}

		err = m.Run(context.Background(), []string{"export", id, "-o", exportPath}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Wrote 2 emails to "+exportPath)

		content, err := os.ReadFile(exportPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "info@example.com")
		assert.Contains(t, string(content), "sales@example.com")
	})

	t.Run("unknown crawl ID", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t.TempDir())
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"export", "does-not-exist"}, &bytes.Buffer{}, stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

// savedCrawlID extracts the crawl ID from the "Saved crawl <id>" line.
func savedCrawlID(t *testing.T, output string) string {
	t.Helper()

	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "Saved crawl ") {
			return strings.TrimPrefix(line, "Saved crawl ")
		}
	}
	t.Fatalf("no saved crawl ID in output:\n%s", output)
	return ""
}
