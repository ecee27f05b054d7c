// Package fs provides file-based export of crawl results.
package fs

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/mailsift/mailsift"
)

// csvHeader is the first row of every exported CSV file.
var csvHeader = []string{"Email", "Page URL", "Page Title"}

// ExportPath derives a default CSV filename from the crawled site.
// Example: https://example.com/about → emails_example.com.csv
func ExportPath(startURL string) (string, error) {
	u, err := url.Parse(startURL)
	if err != nil {
		return "", mailsift.Errorf(mailsift.EINVALID, "invalid start URL: %s", startURL)
	}
	if u.Host == "" {
		return "", mailsift.Errorf(mailsift.EINVALID, "start URL has no host: %s", startURL)
	}
	return fmt.Sprintf("emails_%s.csv", u.Host), nil
}

// WriteCSV writes records as CSV to w, header row first. Records are
// written in the order given.
func WriteCSV(w io.Writer, records []mailsift.EmailRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, record := range records {
		if err := cw.Write([]string{record.Email, record.PageURL, record.PageTitle}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes records to a CSV file at path, creating parent
// directories as needed. An existing file is overwritten.
func SaveCSV(path string, records []mailsift.EmailRecord) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
