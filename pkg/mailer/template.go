package mailer

import (
	"errors"
	"fmt"
	"html/template"

	"github.com/dmitrymomot/mailcompose/pkg/sanitizer"
)

// Parameter names injected by Template.
const (
	// ParamContent carries the rendered body into a layout view.
	ParamContent = "content"
	// ParamMessage carries the message being composed into views and layouts.
	ParamMessage = "message"
)

// Template renders the views of a single compose call.
// It is short-lived: Composer creates a fresh Template per call from a
// snapshot of its configuration.
type Template struct {
	view       View
	viewPath   string
	spec       ViewSpec
	htmlLayout Layout
	textLayout Layout
}

// NewTemplate creates a template rendering spec with view, resolving names
// relative to viewPath. Layouts are disabled until set.
func NewTemplate(view View, viewPath string, spec ViewSpec) *Template {
	return &Template{
		view:     view,
		viewPath: viewPath,
		spec:     spec,
	}
}

// SetHTMLLayout sets the layout wrapping the HTML body. NoLayout disables it.
func (t *Template) SetHTMLLayout(layout Layout) { t.htmlLayout = layout }

// SetTextLayout sets the layout wrapping the text body. NoLayout disables it.
func (t *Template) SetTextLayout(layout Layout) { t.textLayout = layout }

// composed holds rendered output before it is assigned to the message.
type composed struct {
	subject string
	html    string
	text    string
}

// Compose renders the configured views and writes the subject and bodies
// to msg. The message is only modified when every render succeeds.
//
// When no text view is named, the text body is derived from the final
// (layout-wrapped) HTML body by stripping markup.
func (t *Template) Compose(msg *Message, params Params) error {
	if msg == nil {
		return ErrNoMessage
	}
	if t.spec.IsZero() {
		return nil
	}
	if t.view == nil {
		return ErrNoView
	}

	var out composed

	if t.spec.HTML != "" {
		body, subject, err := t.renderBody(msg, t.spec.HTML, t.htmlLayout, params, true)
		if err != nil {
			return fmt.Errorf("html body: %w", err)
		}
		out.html = body
		out.subject = subject
	}

	if t.spec.Text != "" {
		body, subject, err := t.renderBody(msg, t.spec.Text, t.textLayout, params, false)
		if err != nil {
			return fmt.Errorf("text body: %w", err)
		}
		out.text = body
		if out.subject == "" {
			out.subject = subject
		}
	} else if out.html != "" {
		out.text = sanitizer.HTMLToText(out.html)
	}

	if out.subject != "" {
		msg.Subject = out.subject
	}
	if out.html != "" {
		msg.HTMLBody = out.html
	}
	if out.text != "" {
		msg.TextBody = out.text
	}
	return nil
}

// renderBody renders a view, extracts its frontmatter and applies the layout.
func (t *Template) renderBody(msg *Message, name string, layout Layout, params Params, isHTML bool) (string, string, error) {
	raw, err := t.render(name, t.viewParams(msg, params))
	if err != nil {
		return "", "", err
	}

	fm, err := parseFrontmatter(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", ErrRender, name, err)
	}
	subject, _ := fm.subject()

	if !layout.Enabled() {
		return fm.Body, subject, nil
	}

	layoutParams := t.viewParams(msg, params)
	if isHTML {
		layoutParams[ParamContent] = template.HTML(fm.Body) //nolint:gosec // rendered by a trusted view
	} else {
		layoutParams[ParamContent] = fm.Body
	}

	wrapped, err := t.render(string(layout), layoutParams)
	if err != nil {
		return "", "", fmt.Errorf("layout: %w", err)
	}
	return wrapped, subject, nil
}

// render calls the view engine and normalizes its error into
// ErrViewNotFound or ErrRender.
func (t *Template) render(name string, params Params) (string, error) {
	out, err := t.view.Render(name, params, t.viewPath)
	if err == nil {
		return out, nil
	}
	if errors.Is(err, ErrViewNotFound) || errors.Is(err, ErrRender) {
		return "", err
	}
	return "", fmt.Errorf("%w: %s: %w", ErrRender, name, err)
}

// viewParams copies params and adds the message under ParamMessage unless
// the caller already supplied that key.
func (t *Template) viewParams(msg *Message, params Params) Params {
	p := make(Params, len(params)+2)
	for k, v := range params {
		p[k] = v
	}
	if _, ok := p[ParamMessage]; !ok {
		p[ParamMessage] = msg
	}
	return p
}
