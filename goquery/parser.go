// Package goquery parses fetched HTML documents into mailsift pages:
// title, visible text, and resolved anchor links.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mailsift/mailsift"
	"golang.org/x/net/html"
)

// MissingTitle is the placeholder used when a document has no title
// element.
const MissingTitle = "N/A"

// Ensure Parser implements mailsift.PageParser at compile time.
var _ mailsift.PageParser = (*Parser)(nil)

// Parser extracts the title, visible text, and anchor hrefs from HTML.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse turns raw HTML into a Page. Anchor hrefs are resolved against
// finalURL, canonicalized, and deduplicated in document order;
// internal/external filtering is left to the caller.
func (p *Parser) Parse(rawHTML, finalURL string) (*mailsift.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, mailsift.Errorf(mailsift.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = MissingTitle
	}

	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		resolved := mailsift.ResolveLink(href, finalURL)
		if resolved == "" {
			return
		}
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})

	return &mailsift.Page{
		FinalURL: finalURL,
		Title:    title,
		Text:     visibleText(doc),
		Links:    links,
	}, nil
}

// visibleText collects the document's text nodes joined by single
// spaces, skipping script and style subtrees. The separator keeps
// email addresses from fusing with neighboring words when markup is
// stripped.
func visibleText(doc *goquery.Document) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}
