package view

import (
	"bytes"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/mailcompose/pkg/mailer"
)

// kind selects the template flavor by file extension.
type kind int

const (
	kindText kind = iota
	kindHTML
	kindMarkdown
)

func kindOf(file string) kind {
	switch strings.ToLower(path.Ext(file)) {
	case ".html", ".htm":
		return kindHTML
	case ".md", ".markdown":
		return kindMarkdown
	default:
		return kindText
	}
}

// compiled is a parsed view file ready for execution.
type compiled struct {
	html *htmltemplate.Template
	text *texttemplate.Template
	kind kind
}

// cache holds parsed views keyed by their resolved path.
// Engines derived with ForLanguage share it.
type cache struct {
	entries map[string]*compiled
	group   singleflight.Group
	mu      sync.RWMutex
}

// Engine renders view files from an fs.FS using Go templates.
//
// Files ending in .html use html/template, .md files are executed as
// text/template and converted from Markdown to HTML, everything else uses
// text/template.
type Engine struct {
	fs    fs.FS
	md    goldmark.Markdown
	cache *cache
	opts  *options
	lang  language.Tag
}

var _ mailer.View = (*Engine)(nil)

// New creates an engine loading views from fsys.
func New(fsys fs.FS, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	return &Engine{
		fs:   fsys,
		opts: o,
		lang: o.language,
		md: goldmark.New(
			goldmark.WithExtensions(NewButtonExtension(o.buttonClass)),
		),
		cache: &cache{entries: make(map[string]*compiled)},
	}
}

// ForLanguage returns an engine that prefers views localized for tag.
// The returned engine shares the parse cache with e.
func (e *Engine) ForLanguage(tag language.Tag) *Engine {
	clone := *e
	clone.lang = tag
	return &clone
}

// Language returns the language views are localized for.
func (e *Engine) Language() language.Tag {
	return e.lang
}

// Render implements mailer.View.
func (e *Engine) Render(name string, params mailer.Params, basePath string) (string, error) {
	file, err := e.resolve(name, basePath)
	if err != nil {
		return "", err
	}

	tmpl, err := e.load(file)
	if err != nil {
		return "", err
	}

	data := map[string]any(params)
	var buf bytes.Buffer

	switch tmpl.kind {
	case kindHTML:
		err = tmpl.html.Execute(&buf, data)
	default:
		err = tmpl.text.Execute(&buf, data)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", mailer.ErrRender, file, err)
	}

	if tmpl.kind != kindMarkdown {
		return buf.String(), nil
	}

	// Front matter stays out of the Markdown conversion.
	block, body, _ := mailer.CutFrontmatter(buf.String())

	var out bytes.Buffer
	out.WriteString(block)
	if err := e.md.Convert([]byte(body), &out); err != nil {
		return "", fmt.Errorf("%w: %s: failed to convert markdown: %v", mailer.ErrRender, file, err)
	}
	return out.String(), nil
}

// resolve finds the file for name under basePath, trying localized
// directories first and the configured extensions when name has none.
func (e *Engine) resolve(name, basePath string) (string, error) {
	names := []string{name}
	if path.Ext(name) == "" {
		names = names[:0]
		for _, ext := range e.opts.extensions {
			names = append(names, name+ext)
		}
	}

	for _, dir := range localizedDirs(basePath, e.lang) {
		for _, n := range names {
			file := cleanPath(path.Join(dir, n))
			if !fs.ValidPath(file) {
				continue
			}
			info, err := fs.Stat(e.fs, file)
			if err == nil && !info.IsDir() {
				return file, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", mailer.ErrViewNotFound, path.Join(basePath, name))
}

// load returns the parsed view for file, parsing it at most once.
func (e *Engine) load(file string) (*compiled, error) {
	e.cache.mu.RLock()
	c, ok := e.cache.entries[file]
	e.cache.mu.RUnlock()
	if ok {
		return c, nil
	}

	v, err, _ := e.cache.group.Do(file, func() (any, error) {
		c, err := e.parse(file)
		if err != nil {
			return nil, err
		}
		e.cache.mu.Lock()
		e.cache.entries[file] = c
		e.cache.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*compiled), nil
}

func (e *Engine) parse(file string) (*compiled, error) {
	content, err := fs.ReadFile(e.fs, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", mailer.ErrViewNotFound, file)
		}
		return nil, fmt.Errorf("%w: %s: %v", mailer.ErrRender, file, err)
	}

	c := &compiled{kind: kindOf(file)}
	missingKey := "missingkey=default"
	if e.opts.strict {
		missingKey = "missingkey=error"
	}

	switch c.kind {
	case kindHTML:
		c.html, err = htmltemplate.New(file).Option(missingKey).Funcs(e.opts.funcs).Parse(string(content))
	default:
		c.text, err = texttemplate.New(file).Option(missingKey).Funcs(e.opts.funcs).Parse(string(content))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", mailer.ErrRender, file, err)
	}
	return c, nil
}

// cleanPath turns a joined view path into an fs.FS path.
func cleanPath(p string) string {
	p = strings.TrimPrefix(path.Clean(p), "/")
	if p == "" {
		return "."
	}
	return p
}
