// Package sanitizer converts rendered HTML into forms safe for plain text
// bodies and for embedding untrusted values into previews.
package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once

	// bodyPattern captures the inner content of the <body> element.
	bodyPattern = regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`)

	// blankRuns matches three or more consecutive line breaks.
	blankRuns = regexp.MustCompile(`\n{3,}`)
)

func initPolicies() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML; script and style contents are dropped.
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// StripTags removes all markup from s and returns readable plain text.
// HTML entities are decoded, so "Tom &amp; Jerry" becomes "Tom & Jerry".
// Malformed input degrades to whatever text survives; it never fails.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	initPolicies()
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// HTMLToText derives a plain text body from a full HTML document.
// Only the <body> content is used when the document has one. After the
// markup is stripped, each line loses its indentation, runs of blank lines
// collapse to one and surrounding whitespace is trimmed.
func HTMLToText(document string) string {
	if m := bodyPattern.FindStringSubmatch(document); m != nil {
		document = m[1]
	}

	lines := strings.Split(strings.ReplaceAll(StripTags(document), "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeft(line, " \t")
	}
	text := blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}

// SanitizeHTML allows safe formatting tags (p, a, strong, em, lists, code).
// Strips all dangerous elements and attributes including scripts, event handlers,
// and javascript: URLs.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}
