package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailcompose/pkg/mailer"
	"github.com/dmitrymomot/mailcompose/pkg/mailer/eml"
)

// Output formats of the render command.
const (
	formatHTML = "html"
	formatText = "text"
	formatEML  = "eml"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		mf     messageFlags
		format string
		to     []string
	)

	cmd := &cobra.Command{
		Use:   "render <view>",
		Short: "Compose a message and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := mf.load()
			if err != nil {
				return err
			}
			m, err := a.newMailer(nil, &mf)
			if err != nil {
				return err
			}
			msg, err := m.Compose(mf.spec(args[0]), params)
			if err != nil {
				return err
			}
			msg.To = to
			return writeMessage(cmd.OutOrStdout(), msg, format)
		},
	}

	mf.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatHTML, "output format: html, text or eml")
	cmd.Flags().StringSliceVar(&to, "to", nil, "recipients written to the eml output")
	return cmd
}

// newMailer builds a Mailer from the loaded configuration and the message
// flags. sender may be nil when messages are only composed.
func (a *app) newMailer(sender mailer.Sender, mf *messageFlags) (*mailer.Mailer, error) {
	c, err := a.composer()
	if err != nil {
		return nil, err
	}

	cfg := a.cfg.Mailer
	if mf.from != "" {
		cfg.From = mf.from
	}
	if mf.subject != "" {
		cfg.FallbackSubject = mf.subject
	}

	return mailer.New(c, sender, cfg, mailer.WithLogger(a.logger)), nil
}

func writeMessage(w io.Writer, msg *mailer.Message, format string) error {
	switch format {
	case formatHTML:
		_, err := io.WriteString(w, msg.HTMLBody)
		return err
	case formatText:
		_, err := io.WriteString(w, msg.TextBody)
		return err
	case formatEML:
		return eml.Write(w, msg)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
