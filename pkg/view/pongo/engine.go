// Package pongo provides a mailer.View rendering Django-style templates
// with pongo2.
//
// Views are loaded from an fs.FS; names without an extension get ".tpl"
// appended. Autoescaping is on, and html/template.HTML parameters (such as
// the layout "content") are passed through as safe values:
//
//	engine := pongo.New(os.DirFS("templates"))
//	c := mailer.NewComposer(engine, "mail")
//
// A layout then looks like:
//
//	<html><body>{{ content }}</body></html>
package pongo

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/dmitrymomot/mailcompose/pkg/mailer"
)

// DefaultExtension is appended to view names without an extension.
const DefaultExtension = ".tpl"

// Option configures the engine.
type Option func(*Engine)

// WithExtension overrides the extension appended to bare view names.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// WithGlobals seeds values available to every view.
func WithGlobals(globals map[string]any) Option {
	return func(e *Engine) {
		for k, v := range globals {
			e.set.Globals[k] = v
		}
	}
}

// Engine renders pongo2 templates from an fs.FS.
type Engine struct {
	fs  fs.FS
	set *pongo2.TemplateSet
	ext string
}

var _ mailer.View = (*Engine)(nil)

// New creates an engine loading templates from fsys.
func New(fsys fs.FS, opts ...Option) *Engine {
	set := pongo2.NewSet("mailcompose", pongo2.NewFSLoader(fsys))
	if set.Globals == nil {
		set.Globals = make(pongo2.Context)
	}

	e := &Engine{fs: fsys, set: set, ext: DefaultExtension}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Render implements mailer.View.
func (e *Engine) Render(name string, params mailer.Params, basePath string) (string, error) {
	file := strings.TrimPrefix(path.Join(basePath, name), "/")
	if path.Ext(file) == "" {
		file += e.ext
	}

	if !fs.ValidPath(file) {
		return "", fmt.Errorf("%w: %s", mailer.ErrViewNotFound, file)
	}
	if info, err := fs.Stat(e.fs, file); err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", mailer.ErrViewNotFound, file)
	}

	tmpl, err := e.set.FromCache(file)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", mailer.ErrRender, file, err)
	}

	out, err := tmpl.Execute(toContext(params))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", mailer.ErrRender, file, err)
	}
	return out, nil
}

// toContext converts params, marking template.HTML values as safe so
// autoescaping leaves them intact.
func toContext(params mailer.Params) pongo2.Context {
	ctx := make(pongo2.Context, len(params))
	for k, v := range params {
		if h, ok := v.(template.HTML); ok {
			ctx[k] = pongo2.AsSafeValue(string(h))
			continue
		}
		ctx[k] = v
	}
	return ctx
}
