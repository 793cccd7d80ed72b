package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/pkg/page"
)

func newPageCmd(a *app) *cobra.Command {
	var token, addr, assets string
	var scripts []string

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Print the signup page, or serve it with --serve",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fns := []page.OptionFn{page.FromConfig(a.cfg), page.WithScripts(scripts...)}
			if token != "" {
				fns = append(fns, page.WithCSRFToken(token))
			}

			if strings.TrimSpace(addr) == "" {
				opts := page.NewOptions(fns...)
				out, err := page.Render(opts, token)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}

			mux := http.NewServeMux()
			pattern, err := page.RegisterRoutes(mux, "/", fns...)
			if err != nil {
				return err
			}
			if assets != "" {
				mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(assets))))
			}
			a.log.Info("serving signup page", "addr", addr, "path", pattern)
			return serve(cmd.Context(), &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			})
		},
	}
	cmd.Flags().StringVar(&token, "csrf-token", "", "anti-forgery token embedded in the page")
	cmd.Flags().StringVar(&addr, "serve", "", "listen address; prints the page when empty")
	cmd.Flags().StringVar(&assets, "assets", "", "directory served under /static/ (wasm build output)")
	cmd.Flags().StringSliceVar(&scripts, "script", nil, "script sources appended to the page")
	return cmd
}

func serve(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
