package mailer

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Notification"`
	From            string `env:"MAILER_FROM"`
	HTMLLayout      string `env:"MAILER_HTML_LAYOUT" envDefault:"layouts/html"`
	TextLayout      string `env:"MAILER_TEXT_LAYOUT" envDefault:"layouts/text"`
	ViewPath        string `env:"MAILER_VIEW_PATH" envDefault:"."`
}

// NewComposerFromConfig creates a Composer using the view path and layouts from cfg.
// An empty layout in cfg disables it. Options are applied after cfg.
func NewComposerFromConfig(view View, cfg Config, opts ...Option) *Composer {
	base := []Option{
		WithHTMLLayout(Layout(cfg.HTMLLayout)),
		WithTextLayout(Layout(cfg.TextLayout)),
	}
	return NewComposer(view, cfg.ViewPath, append(base, opts...)...)
}
