package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailcompose/pkg/mailer"
	"github.com/dmitrymomot/mailcompose/pkg/mailer/eml"
	"github.com/dmitrymomot/mailcompose/pkg/mailer/resend"
)

func newSendCmd(a *app) *cobra.Command {
	var (
		mf      messageFlags
		to      []string
		cc      []string
		replyTo string
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "send <view>",
		Short: "Compose a message and deliver it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("out") {
				a.cfg.Outbox = outDir
			}
			sender, err := a.sender()
			if err != nil {
				return err
			}

			params, err := mf.load()
			if err != nil {
				return err
			}
			m, err := a.newMailer(sender, &mf)
			if err != nil {
				return err
			}
			msg, err := m.Compose(mf.spec(args[0]), params)
			if err != nil {
				return err
			}
			msg.To = to
			msg.CC = cc
			msg.ReplyTo = replyTo

			if err := m.Send(cmd.Context(), msg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sent %q to %d recipient(s)\n", msg.Subject, len(msg.To))
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().StringSliceVar(&to, "to", nil, "recipient addresses")
	cmd.Flags().StringSliceVar(&cc, "cc", nil, "carbon copy addresses")
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "reply-to address")
	cmd.Flags().StringVar(&outDir, "out", "", "write .eml files to this directory instead of sending (env MAILCOMPOSE_OUTBOX)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// sender picks the file transport when an outbox is configured and the
// Resend API otherwise.
func (a *app) sender() (mailer.Sender, error) {
	if a.cfg.Outbox != "" {
		return eml.NewFileSender(a.cfg.Outbox), nil
	}
	if a.cfg.Resend.APIKey == "" {
		return nil, errors.New("no transport configured: set RESEND_API_KEY or --out")
	}
	return resend.New(a.cfg.Resend), nil
}
