package mock

import "github.com/mailsift/mailsift"

var _ mailsift.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of mailsift.PageParser.
type PageParser struct {
	ParseFn func(html, finalURL string) (*mailsift.Page, error)
}

func (p *PageParser) Parse(html, finalURL string) (*mailsift.Page, error) {
	return p.ParseFn(html, finalURL)
}
