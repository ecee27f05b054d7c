package mailsift

import (
	"net/url"
	"strings"
)

// ResolveLink resolves a possibly-relative href against the page's
// final URL and canonicalizes the result to scheme://host/path. Query
// strings and fragments are dropped, so links differing only in them
// canonicalize to the same URL and dedup together. Malformed
// references and non-HTTP schemes resolve to "" and are dropped
// silently.
func ResolveLink(href, base string) string {
	if href == "" || isNonHTTPLink(href) {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := baseURL.ResolveReference(ref)
	return resolved.Scheme + "://" + resolved.Host + resolved.Path
}

// IsInternalLink reports whether a link belongs to the crawl's
// starting host. A link with an empty host (relative or same-document)
// counts as internal. Hosts are compared as exact strings: subdomains
// are external, and scheme is not considered.
func IsInternalLink(link, baseHost string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Host == "" || u.Host == baseHost
}

// isNonHTTPLink reports whether href uses a scheme that can never
// yield a crawlable page.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
