package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/pkg/terminal"
)

func newPromptCmd(a *app) *cobra.Command {
	var token, pageURL string
	var once bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Ask for addresses interactively and submit them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			doc, err := a.document(ctx, pageURL, token)
			if err != nil {
				return err
			}
			ctrl, renderer, err := a.controller(ctx, doc)
			if err != nil {
				return err
			}

			opts := []terminal.Option{terminal.WithDriver(terminal.NewSurveyDriver(cmd.OutOrStdout()))}
			if once {
				opts = append(opts, terminal.WithSingleAttempt())
			}
			session, err := terminal.NewSession(ctrl, renderer, opts...)
			if err != nil {
				return err
			}
			return session.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&token, "csrf-token", "", "anti-forgery token for the built-in page")
	cmd.Flags().StringVar(&pageURL, "page-url", "", "bind to the live page at this URL instead of the built-in one")
	cmd.Flags().BoolVar(&once, "once", false, "stop after the first submission")
	return cmd
}
