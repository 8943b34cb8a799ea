package templview

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailcompose/pkg/mailer"
)

func greeting(name string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>Hello "+html.EscapeString(name)+"</p>")
		return err
	})
}

func layout(content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<main>"); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main>")
		return err
	})
}

func newEngine() *Engine {
	return New().
		Register("mail/contact", func(p mailer.Params) templ.Component {
			name, _ := p["name"].(string)
			return greeting(name)
		}).
		Register("mail/layouts/html", func(p mailer.Params) templ.Component {
			return layout(templ.Raw(fmt.Sprint(p[mailer.ParamContent])))
		}).
		Register("mail/failing", func(mailer.Params) templ.Component {
			return templ.ComponentFunc(func(context.Context, io.Writer) error {
				return errors.New("boom")
			})
		})
}

func TestEngine_Render(t *testing.T) {
	t.Parallel()

	out, err := newEngine().Render("contact", mailer.Params{"name": "<Al>"}, "mail")
	require.NoError(t, err)
	require.Equal(t, "<p>Hello &lt;Al&gt;</p>", out)

	out, err = newEngine().Render("/mail/contact", mailer.Params{"name": "Bo"}, "")
	require.NoError(t, err)
	require.Equal(t, "<p>Hello Bo</p>", out)
}

func TestEngine_Render_Errors(t *testing.T) {
	t.Parallel()

	_, err := newEngine().Render("missing", nil, "mail")
	require.ErrorIs(t, err, mailer.ErrViewNotFound)

	_, err = newEngine().Render("failing", nil, "mail")
	require.ErrorIs(t, err, mailer.ErrRender)

	e := New().Register("mail/nil", func(mailer.Params) templ.Component { return nil })
	_, err = e.Render("nil", nil, "mail")
	require.ErrorIs(t, err, mailer.ErrRender)
}

func TestEngine_WithComposer(t *testing.T) {
	t.Parallel()

	c := mailer.NewComposer(newEngine(), "mail", mailer.WithTextLayout(mailer.NoLayout))

	msg := &mailer.Message{}
	require.NoError(t, c.Compose(msg, mailer.Single("contact"), mailer.Params{"name": "Ann"}))

	require.Equal(t, "<main><p>Hello Ann</p></main>", msg.HTMLBody)
	require.Equal(t, "Hello Ann", msg.TextBody)
}
