package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailcompose/pkg/preview"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve previews of the views over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.composer()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("addr") {
				a.cfg.Preview.Address = addr
			}
			a.cfg.Preview.Logger = a.logger

			views := a.cfg.Views
			h := preview.New(c,
				preview.WithLogger(a.logger),
				preview.WithFrom(a.cfg.Mailer.From),
				preview.WithCheck("views", func(context.Context) error {
					info, err := os.Stat(views)
					if err != nil {
						return err
					}
					if !info.IsDir() {
						return fmt.Errorf("%s is not a directory", views)
					}
					return nil
				}),
			)
			return preview.Serve(cmd.Context(), a.cfg.Preview, h)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (env PREVIEW_ADDR)")
	return cmd
}
