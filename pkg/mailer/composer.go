package mailer

import (
	"log/slog"
	"sync"
)

// Composer composes mail messages by rendering views.
// It holds the default layouts, the view root and the view engine, and
// creates a Template from a snapshot of them on every Compose call.
type Composer struct {
	view       View
	logger     *slog.Logger
	viewPath   string
	htmlLayout Layout
	textLayout Layout

	mu sync.RWMutex
}

// NewComposer creates a composer rendering views with view from viewPath.
func NewComposer(view View, viewPath string, opts ...Option) *Composer {
	o := applyOptions(opts)
	return &Composer{
		view:       view,
		viewPath:   viewPath,
		htmlLayout: o.htmlLayout,
		textLayout: o.textLayout,
		logger:     o.logger,
	}
}

// HTMLLayout returns the layout applied to HTML bodies.
func (c *Composer) HTMLLayout() Layout {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.htmlLayout
}

// SetHTMLLayout sets the layout for HTML bodies of future Compose calls.
func (c *Composer) SetHTMLLayout(layout Layout) {
	c.mu.Lock()
	c.htmlLayout = layout
	c.mu.Unlock()
}

// TextLayout returns the layout applied to text bodies.
func (c *Composer) TextLayout() Layout {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.textLayout
}

// SetTextLayout sets the layout for text bodies of future Compose calls.
func (c *Composer) SetTextLayout(layout Layout) {
	c.mu.Lock()
	c.textLayout = layout
	c.mu.Unlock()
}

// ViewPath returns the directory view names are resolved against.
func (c *Composer) ViewPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewPath
}

// SetViewPath sets the directory view names are resolved against.
func (c *Composer) SetViewPath(path string) {
	c.mu.Lock()
	c.viewPath = path
	c.mu.Unlock()
}

// View returns the view engine.
func (c *Composer) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

// SetView sets the view engine used by future Compose calls.
func (c *Composer) SetView(view View) {
	c.mu.Lock()
	c.view = view
	c.mu.Unlock()
}

// NewTemplate creates a template for spec configured with the composer's
// current layouts, view engine and view path.
func (c *Composer) NewTemplate(spec ViewSpec) *Template {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tmpl := NewTemplate(c.view, c.viewPath, spec)
	tmpl.SetHTMLLayout(c.htmlLayout)
	tmpl.SetTextLayout(c.textLayout)
	return tmpl
}

// Compose renders spec with params and writes the result to msg.
// See Template.Compose for the rendering rules.
func (c *Composer) Compose(msg *Message, spec ViewSpec, params Params) error {
	if err := c.NewTemplate(spec).Compose(msg, params); err != nil {
		c.logger.Error("failed to compose message",
			slog.String("html_view", spec.HTML),
			slog.String("text_view", spec.Text),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.logger.Debug("message composed",
		slog.String("html_view", spec.HTML),
		slog.String("text_view", spec.Text),
		slog.Int("html_bytes", len(msg.HTMLBody)),
		slog.Int("text_bytes", len(msg.TextBody)),
	)
	return nil
}
