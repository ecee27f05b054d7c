package mailsift

import (
	"regexp"
	"strings"
)

// emailPattern matches localpart@domain.tld with a TLD of at least two
// letters. Text is lowercased before matching, so lowercase character
// classes suffice. Syntactic shape only; no RFC 5321 strictness.
var emailPattern = regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)

// obfuscationPatterns rewrite human-obfuscated email spellings into
// standard form. Each pattern matches case-insensitively and tolerates
// surrounding whitespace of any length, including none for the
// bracketed forms.
var obfuscationPatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\s*\[at\]\s*`), "@"},
	{regexp.MustCompile(`(?i)\s*\(at\)\s*`), "@"},
	{regexp.MustCompile(`(?i)\s+at\s+`), "@"},
	{regexp.MustCompile(`(?i)\s*\[dot\]\s*`), "."},
	{regexp.MustCompile(`(?i)\s*\(dot\)\s*`), "."},
	{regexp.MustCompile(`(?i)\s+dot\s+`), "."},
}

// NormalizeText lowercases text and rewrites obfuscated email
// spellings ([at], (at), " at ", [dot], (dot), " dot ") into @ and .
// form. Each pattern is applied to the already-partially-rewritten
// text, so mixed obfuscations in one address still normalize.
// Normalizing already-normalized text is a no-op.
func NormalizeText(text string) string {
	text = strings.ToLower(text)
	for _, p := range obfuscationPatterns {
		text = p.re.ReplaceAllString(text, p.replacement)
	}
	return text
}

// ExtractEmails normalizes text and returns the distinct email-shaped
// matches in first-occurrence order. Text with no matches yields an
// empty result, never an error.
func ExtractEmails(text string) []string {
	matches := emailPattern.FindAllString(NormalizeText(text), -1)
	seen := make(map[string]struct{}, len(matches))
	var emails []string
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		emails = append(emails, m)
	}
	return emails
}
