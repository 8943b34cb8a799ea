package mailer

import (
	"fmt"
	"strings"
)

// View renders a named view file with parameters.
// The name is resolved relative to basePath. Implementations should wrap
// ErrViewNotFound when the name cannot be resolved and ErrRender on
// template failures.
type View interface {
	Render(name string, params Params, basePath string) (string, error)
}

// ViewFunc adapts an ordinary function to the View interface.
type ViewFunc func(name string, params Params, basePath string) (string, error)

// Render calls f(name, params, basePath).
func (f ViewFunc) Render(name string, params Params, basePath string) (string, error) {
	return f(name, params, basePath)
}

// Layout is the name of a view wrapping a rendered body.
// NoLayout disables wrapping for the body kind.
type Layout string

const (
	// NoLayout disables layout wrapping.
	NoLayout Layout = ""

	// DefaultHTMLLayout is the HTML layout a Composer starts with.
	DefaultHTMLLayout Layout = "layouts/html"

	// DefaultTextLayout is the text layout a Composer starts with.
	DefaultTextLayout Layout = "layouts/text"
)

// Enabled reports whether the layout wraps the body.
func (l Layout) Enabled() bool { return l != NoLayout }

// ViewSpec names the views used for the HTML and text bodies.
// Either name may be empty. When Text is empty and HTML is rendered,
// the text body is derived from the HTML body.
type ViewSpec struct {
	HTML string
	Text string
}

// Single returns a spec rendering name as the HTML body.
func Single(name string) ViewSpec {
	return ViewSpec{HTML: name}
}

// Pair returns a spec with separate HTML and text views.
func Pair(html, text string) ViewSpec {
	return ViewSpec{HTML: html, Text: text}
}

// IsZero reports whether no view is named.
func (s ViewSpec) IsZero() bool {
	return s.HTML == "" && s.Text == ""
}

// ParseViewSpec converts a loosely typed value into a ViewSpec.
// Accepted are a string (HTML view name), a ViewSpec, and maps with the
// optional keys "html" and "text".
func ParseViewSpec(v any) (ViewSpec, error) {
	switch val := v.(type) {
	case ViewSpec:
		return val, nil
	case string:
		return Single(val), nil
	case map[string]string:
		m := make(map[string]any, len(val))
		for k, s := range val {
			m[k] = s
		}
		return parseViewSpecMap(m)
	case map[string]any:
		return parseViewSpecMap(val)
	default:
		return ViewSpec{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidViewSpec, v)
	}
}

func parseViewSpecMap(m map[string]any) (ViewSpec, error) {
	var spec ViewSpec
	for key, raw := range m {
		name, ok := raw.(string)
		if !ok {
			return ViewSpec{}, fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidViewSpec, key, raw)
		}
		switch strings.ToLower(key) {
		case "html":
			spec.HTML = name
		case "text":
			spec.Text = name
		default:
			return ViewSpec{}, fmt.Errorf("%w: unknown key %q", ErrInvalidViewSpec, key)
		}
	}
	return spec, nil
}
