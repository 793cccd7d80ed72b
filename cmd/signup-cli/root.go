package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/internal/logging"
	"github.com/goliatone/go-signup/pkg/config"
	"github.com/goliatone/go-signup/pkg/dom/htmldom"
	"github.com/goliatone/go-signup/pkg/feedback"
	"github.com/goliatone/go-signup/pkg/page"
	"github.com/goliatone/go-signup/pkg/subscribe"
	"github.com/goliatone/go-signup/pkg/transport"
)

type app struct {
	cfgFile string
	baseURL string
	variant string
	verbose bool

	cfg   config.Config
	log   logr.Logger
	flush func()
	http  *http.Client
}

func newRootCmd() *cobra.Command {
	a := &app{flush: func() {}}

	root := &cobra.Command{
		Use:           "signup-cli",
		Short:         "Submit newsletter signups through the signup form controller",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.flush()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "endpoint base URL (overrides config)")
	root.PersistentFlags().StringVar(&a.variant, "theme-variant", "", "feedback theme variant: default or dark")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log controller debug traces")

	root.AddCommand(newSubmitCmd(a))
	root.AddCommand(newPromptCmd(a))
	root.AddCommand(newPageCmd(a))
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(a.baseURL); v != "" {
		cfg.Endpoint.BaseURL = v
	}
	if v := strings.TrimSpace(a.variant); v != "" {
		cfg.Theme.Variant = v
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg

	logger, flush, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.log = logger
	a.flush = flush

	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("cookie jar: %w", err)
	}
	a.http = &http.Client{Jar: jar}
	return nil
}

// document loads the page to bind: the live page at pageURL when given, so
// the server's anti-forgery cookie and token are picked up, otherwise the
// built-in page carrying token.
func (a *app) document(ctx context.Context, pageURL, token string) (*htmldom.Document, error) {
	if pageURL = strings.TrimSpace(pageURL); pageURL == "" {
		markup, err := page.RenderWith(token, page.FromConfig(a.cfg))
		if err != nil {
			return nil, err
		}
		return htmldom.ParseString(markup)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("page request: %w", err)
	}
	res, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page: status %d", res.StatusCode)
	}
	return htmldom.Parse(io.LimitReader(res.Body, 4<<20))
}

func (a *app) controller(ctx context.Context, doc *htmldom.Document) (*subscribe.Controller, *feedback.Renderer, error) {
	renderer, err := feedback.New(feedback.WithTheme(a.cfg.Theme.Name, a.cfg.Theme.Variant))
	if err != nil {
		return nil, nil, err
	}
	client := transport.New(
		transport.WithHTTPClient(a.http),
		transport.WithBaseURL(a.cfg.Endpoint.BaseURL),
		transport.WithTimeout(a.cfg.Endpoint.Timeout),
	)
	opts := append(subscribe.FromConfig(a.cfg),
		subscribe.WithTransport(client),
		subscribe.WithRenderer(renderer),
		subscribe.WithLogger(a.log.WithName("subscribe")),
		subscribe.WithContext(ctx),
		subscribe.WithDispatcher(func(fn func()) { fn() }),
	)
	ctrl, err := subscribe.New(doc, opts...)
	if err != nil {
		return nil, nil, err
	}
	return ctrl, renderer, nil
}
