package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/mailcompose/pkg/logger"
	"github.com/dmitrymomot/mailcompose/pkg/mailer"
	"github.com/dmitrymomot/mailcompose/pkg/mailer/resend"
	"github.com/dmitrymomot/mailcompose/pkg/preview"
	"github.com/dmitrymomot/mailcompose/pkg/view"
	"github.com/dmitrymomot/mailcompose/pkg/view/pongo"
)

// Supported view engines.
const (
	engineGo     = "go"
	enginePongo2 = "pongo2"
)

// config is loaded from the environment and then adjusted by flags.
type config struct {
	Mailer  mailer.Config
	Resend  resend.Config
	Log     logger.Config
	Sentry  logger.SentryConfig
	Preview preview.ServerConfig

	Views  string `env:"MAILCOMPOSE_VIEWS" envDefault:"."`
	Engine string `env:"MAILCOMPOSE_ENGINE" envDefault:"go"`
	Lang   string `env:"MAILCOMPOSE_LANG"`
	Outbox string `env:"MAILCOMPOSE_OUTBOX"`
}

// app carries state shared by the subcommands.
type app struct {
	cfg      config
	noLayout bool
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "mailcompose",
		Short:        "Compose mail messages from view templates",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("views", "", "directory containing the views (env MAILCOMPOSE_VIEWS)")
	flags.String("view-path", "", "directory inside --views that view names are relative to (env MAILER_VIEW_PATH)")
	flags.String("engine", "", "view engine: go or pongo2 (env MAILCOMPOSE_ENGINE)")
	flags.String("lang", "", "prefer views localized for this BCP 47 language tag (go engine only)")
	flags.String("html-layout", "", "layout wrapping HTML bodies (env MAILER_HTML_LAYOUT)")
	flags.String("text-layout", "", "layout wrapping text bodies (env MAILER_TEXT_LAYOUT)")
	flags.BoolVar(&a.noLayout, "no-layout", false, "disable both layouts")
	flags.String("log-level", "", "log level: debug, info, warn or error (env LOG_LEVEL)")

	cmd.AddCommand(newRenderCmd(a), newServeCmd(a), newSendCmd(a))
	return cmd
}

// load parses the environment and applies flags that were set explicitly.
func (a *app) load(cmd *cobra.Command) error {
	if err := env.Parse(&a.cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("views", &a.cfg.Views)
	override("view-path", &a.cfg.Mailer.ViewPath)
	override("engine", &a.cfg.Engine)
	override("lang", &a.cfg.Lang)
	override("html-layout", &a.cfg.Mailer.HTMLLayout)
	override("text-layout", &a.cfg.Mailer.TextLayout)
	override("log-level", &a.cfg.Log.Level)

	if a.noLayout {
		a.cfg.Mailer.HTMLLayout = string(mailer.NoLayout)
		a.cfg.Mailer.TextLayout = string(mailer.NoLayout)
	}

	if cmd.Name() == "render" {
		// stdout carries the rendered message.
		a.logger = logger.NewWithWriter(cmd.ErrOrStderr(), a.cfg.Log, logger.ContextAttrs)
		return nil
	}
	a.logger = logger.NewWithSentry(a.cfg.Log, a.cfg.Sentry, preview.RequestIDExtractor(), logger.ContextAttrs)
	return nil
}

// viewEngine builds the configured view engine over the views directory.
func (a *app) viewEngine() (mailer.View, error) {
	fsys := os.DirFS(a.cfg.Views)

	switch a.cfg.Engine {
	case "", engineGo:
		var opts []view.Option
		if a.cfg.Lang != "" {
			tag, err := language.Parse(a.cfg.Lang)
			if err != nil {
				return nil, fmt.Errorf("invalid language %q: %w", a.cfg.Lang, err)
			}
			opts = append(opts, view.WithLanguage(tag))
		}
		return view.New(fsys, opts...), nil
	case enginePongo2:
		if a.cfg.Lang != "" {
			return nil, fmt.Errorf("--lang is not supported by the %s engine", enginePongo2)
		}
		return pongo.New(fsys), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", a.cfg.Engine)
	}
}

// composer builds a Composer from the loaded configuration.
func (a *app) composer() (*mailer.Composer, error) {
	v, err := a.viewEngine()
	if err != nil {
		return nil, err
	}
	return mailer.NewComposerFromConfig(v, a.cfg.Mailer, mailer.WithLogger(a.logger)), nil
}
