package view

import (
	"html/template"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/mailcompose/pkg/sanitizer"
)

// DefaultExtensions are tried in order when a view name has no extension.
var DefaultExtensions = []string{".html", ".txt", ".md", ".tmpl"}

// Option configures the engine.
type Option func(*options)

type options struct {
	funcs       map[string]any
	buttonClass string
	extensions  []string
	language    language.Tag
	strict      bool
}

// builtinFuncs are available to every view. WithFuncs may override them.
//
//	sanitize   keeps safe formatting markup of user supplied HTML
//	stripTags  reduces HTML to plain text
func builtinFuncs() map[string]any {
	return map[string]any{
		"sanitize": func(s string) template.HTML {
			return template.HTML(sanitizer.SanitizeHTML(s)) //nolint:gosec // sanitized above
		},
		"stripTags": sanitizer.StripTags,
	}
}

func defaultOptions() *options {
	return &options{
		funcs:       builtinFuncs(),
		extensions:  DefaultExtensions,
		buttonClass: DefaultButtonClass,
		language:    language.Und,
	}
}

// WithExtensions sets the extensions tried for names without one.
// Default: .html, .txt, .md, .tmpl.
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		if len(exts) > 0 {
			o.extensions = exts
		}
	}
}

// WithFuncs registers template helper functions available to every view.
func WithFuncs(funcs map[string]any) Option {
	return func(o *options) {
		for name, fn := range funcs {
			o.funcs[name] = fn
		}
	}
}

// WithLanguage makes the engine look for views in a directory named after
// tag (and its parents) before the view root.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.language = tag
	}
}

// WithStrictParams makes rendering fail when a view references a
// parameter that was not supplied.
func WithStrictParams() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithButtonClass sets the CSS class of Markdown buttons.
// Default: "btn".
func WithButtonClass(class string) Option {
	return func(o *options) {
		o.buttonClass = class
	}
}
