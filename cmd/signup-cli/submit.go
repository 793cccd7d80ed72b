package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/pkg/subscribe"
	"github.com/goliatone/go-signup/pkg/terminal"
)

func newSubmitCmd(a *app) *cobra.Command {
	var email, name, token, pageURL string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit one address and print the resulting message",
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

			fields := ctrl.Fields()
			fields.Email.SetValue(email)
			fields.Name.SetValue(name)

			out := ctrl.HandleSubmit(ctx)

			session, err := terminal.NewSession(ctrl, renderer,
				terminal.WithDriver(terminal.NewSurveyDriver(cmd.OutOrStdout())),
			)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), session.Report(out))
			if out.Kind != subscribe.OutcomeSucceeded {
				return fmt.Errorf("subscription %s", out.Kind)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address to subscribe")
	cmd.Flags().StringVar(&name, "name", "", "subscriber name")
	cmd.Flags().StringVar(&token, "csrf-token", "", "anti-forgery token for the built-in page")
	cmd.Flags().StringVar(&pageURL, "page-url", "", "bind to the live page at this URL instead of the built-in one")
	return cmd
}
