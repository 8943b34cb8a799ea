// Package preview serves composed mail messages over HTTP so templates can be
// checked in a browser while they are being written.
//
// Routes:
//
//	GET /html/{view}   HTML body
//	GET /text/{view}   text body
//	GET /eml/{view}    complete RFC 5322 message
//	GET /health/live   liveness probe
//	GET /health/ready  readiness checks
//
// View names may contain slashes. Query values are passed to the views as
// params. The reserved "text" key names a separate text view and "subject"
// seeds the message subject:
//
//	/html/welcome?name=Alice&text=welcome-text
package preview

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailcompose/pkg/mailer"
	"github.com/dmitrymomot/mailcompose/pkg/mailer/eml"
	"github.com/dmitrymomot/mailcompose/pkg/sanitizer"
)

// Reserved query keys.
const (
	QueryTextView = "text"
	QuerySubject  = "subject"
)

type format int

const (
	formatHTML format = iota
	formatText
	formatEML
)

// Handler renders previews of composed messages.
type Handler struct {
	composer *mailer.Composer
	router   chi.Router
	opts     *options
}

var _ http.Handler = (*Handler)(nil)

// New creates a preview handler composing messages with c.
func New(c *mailer.Composer, opts ...Option) *Handler {
	h := &Handler{
		composer: c,
		opts:     newOptions(opts),
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(h.opts.logger))
	r.Use(recoverer(h.opts.logger, h.opts.stackSize))

	r.Get("/health/live", h.live)
	r.Get("/health/ready", h.ready)
	r.Get("/html/*", h.render(formatHTML))
	r.Get("/text/*", h.render(formatText))
	r.Get("/eml/*", h.render(formatEML))

	h.router = r
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) render(f format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.Trim(chi.URLParam(r, "*"), "/")
		if name == "" {
			http.Error(w, "view name is required", http.StatusNotFound)
			return
		}

		query := r.URL.Query()
		spec := mailer.Single(name)
		if text := query.Get(QueryTextView); text != "" {
			spec = mailer.Pair(name, text)
		}

		msg := &mailer.Message{
			From:    h.opts.from,
			Subject: query.Get(QuerySubject),
		}
		if err := h.composer.Compose(msg, spec, queryParams(query)); err != nil {
			h.fail(w, r, name, err)
			return
		}

		switch f {
		case formatHTML:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(msg.HTMLBody))
		case formatText:
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(msg.TextBody))
		case formatEML:
			doc, err := eml.Build(msg, h.opts.emlOpts...)
			if err != nil {
				h.fail(w, r, name, err)
				return
			}
			w.Header().Set("Content-Type", "message/rfc822")
			if _, err := doc.WriteTo(w); err != nil {
				h.opts.logger.ErrorContext(r.Context(), "failed to write preview",
					slog.String("view", name),
					slog.Any("error", err),
				)
			}
		}
	}
}

// fail maps compose errors to HTTP statuses.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, name string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, mailer.ErrViewNotFound) {
		status = http.StatusNotFound
	}

	h.opts.logger.WarnContext(r.Context(), "preview failed",
		slog.String("view", name),
		slog.Int("status", status),
		slog.Any("error", err),
	)
	http.Error(w, sanitizer.StripTags(err.Error()), status)
}

// queryParams converts query values to view params, skipping reserved keys.
func queryParams(q map[string][]string) mailer.Params {
	params := make(mailer.Params, len(q))
	for k, v := range q {
		if k == QueryTextView || k == QuerySubject || len(v) == 0 {
			continue
		}
		if len(v) == 1 {
			params[k] = v[0]
			continue
		}
		params[k] = v
	}
	return params
}
