// Package templview provides a mailer.View backed by templ components.
//
// Components are registered under view names relative to the composer's
// view path:
//
//	engine := templview.New()
//	engine.Register("mail/contact", func(p mailer.Params) templ.Component {
//		return emails.Contact(p["name"].(string))
//	})
//	engine.Register("mail/layouts/html", func(p mailer.Params) templ.Component {
//		return emails.Layout(templ.Raw(fmt.Sprint(p["content"])))
//	})
//
//	c := mailer.NewComposer(engine, "mail")
package templview

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/mailcompose/pkg/mailer"
)

// Factory builds the component for one render from the view parameters.
type Factory func(params mailer.Params) templ.Component

// Engine renders registered templ components.
type Engine struct {
	views map[string]Factory
	mu    sync.RWMutex
}

var _ mailer.View = (*Engine)(nil)

// New creates an empty engine.
func New() *Engine {
	return &Engine{views: make(map[string]Factory)}
}

// Register binds a component factory to a view name such as "mail/contact".
// Registering the same name again replaces the previous factory.
func (e *Engine) Register(name string, factory Factory) *Engine {
	e.mu.Lock()
	e.views[normalize(name)] = factory
	e.mu.Unlock()
	return e
}

// Render implements mailer.View.
func (e *Engine) Render(name string, params mailer.Params, basePath string) (string, error) {
	key := normalize(path.Join(basePath, name))

	e.mu.RLock()
	factory, ok := e.views[key]
	e.mu.RUnlock()
	if !ok || factory == nil {
		return "", fmt.Errorf("%w: %s", mailer.ErrViewNotFound, key)
	}

	component := factory(params)
	if component == nil {
		return "", fmt.Errorf("%w: %s: factory returned no component", mailer.ErrRender, key)
	}

	var sb strings.Builder
	if err := component.Render(context.Background(), &sb); err != nil {
		return "", fmt.Errorf("%w: %s: %v", mailer.ErrRender, key, err)
	}
	return sb.String(), nil
}

func normalize(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}
