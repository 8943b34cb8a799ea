package mailer

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// frontmatter is the metadata block a view may emit before its body.
type frontmatter struct {
	Metadata map[string]any
	Body     string
}

// subject returns the subject declared in the metadata, if any.
// Keys are matched case-insensitively. Subjects are plain text, so entities
// introduced by HTML escaping engines are decoded.
func (f frontmatter) subject() (string, bool) {
	for k, v := range f.Metadata {
		if !strings.EqualFold(k, "subject") {
			continue
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", false
		}
		return html.UnescapeString(s), true
	}
	return "", false
}

// CutFrontmatter splits a leading front matter block off content. The block
// keeps its delimiter lines, so engines that post-process the body (e.g.
// Markdown conversion) can put it back in front of their output. When content
// has no complete block, found is false and body is content.
func CutFrontmatter(content string) (block, body string, found bool) {
	rest, ok := cutDelimiterLine(content)
	if !ok {
		return "", content, false
	}

	if !strings.HasPrefix(rest, frontmatterDelimiter) {
		idx := strings.Index(rest, "\n"+frontmatterDelimiter)
		if idx == -1 {
			return "", content, false
		}
		rest = rest[idx+1:]
	}
	body, ok = cutDelimiterLine(rest)
	if !ok {
		return "", content, false
	}
	return content[:len(content)-len(body)], body, true
}

// parseFrontmatter splits rendered view output into YAML metadata and body.
// Output that does not open with a "---" line is returned as body unchanged.
func parseFrontmatter(content string) (frontmatter, error) {
	rest, ok := cutDelimiterLine(content)
	if !ok {
		return frontmatter{Body: content}, nil
	}

	var (
		meta string
		body string
	)
	switch {
	case strings.HasPrefix(rest, frontmatterDelimiter):
		// Empty block: "---\n---\n".
		body, ok = cutDelimiterLine(rest)
	default:
		idx := strings.Index(rest, "\n"+frontmatterDelimiter)
		if idx == -1 {
			return frontmatter{}, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
		}
		meta = strings.TrimSuffix(rest[:idx], "\r")
		body, ok = cutDelimiterLine(rest[idx+1:])
	}
	if !ok {
		return frontmatter{}, fmt.Errorf("%w: malformed closing delimiter", ErrInvalidFrontmatter)
	}

	metadata := make(map[string]any)
	if strings.TrimSpace(meta) != "" {
		if err := yaml.Unmarshal([]byte(meta), &metadata); err != nil {
			return frontmatter{}, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return frontmatter{Metadata: metadata, Body: body}, nil
}

// cutDelimiterLine strips a leading "---" line (terminated by \n, \r\n or EOF).
func cutDelimiterLine(s string) (string, bool) {
	rest, ok := strings.CutPrefix(s, frontmatterDelimiter)
	if !ok {
		return s, false
	}
	switch {
	case rest == "":
		return "", true
	case strings.HasPrefix(rest, "\r\n"):
		return rest[2:], true
	case strings.HasPrefix(rest, "\n"):
		return rest[1:], true
	}
	return s, false
}
