//go:build js && wasm

package main

import (
	"context"
	"syscall/js"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/goliatone/go-signup/pkg/dom/jsdom"
	"github.com/goliatone/go-signup/pkg/subscribe"
	"github.com/goliatone/go-signup/pkg/transport"
)

func main() {
	logger := consoleLogger()

	doc, err := jsdom.New()
	if err != nil {
		logger.Error(err, "document unavailable")
		return
	}

	origin := js.Global().Get("location").Get("origin").String()
	client := transport.New(transport.WithBaseURL(origin))

	if _, err := subscribe.New(doc,
		subscribe.WithTransport(client),
		subscribe.WithLogger(logger.WithName("subscribe")),
		subscribe.WithContext(context.Background()),
	); err != nil {
		logger.Error(err, "signup form not bound")
		doc.Release()
		return
	}
	logger.V(1).Info("signup form bound", "origin", origin)

	select {}
}

// consoleLogger writes to the browser console. Setting window.signupDebug
// before the module loads enables debug traces.
func consoleLogger() logr.Logger {
	console := js.Global().Get("console")
	verbosity := 0
	if js.Global().Get("signupDebug").Truthy() {
		verbosity = 1
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			console.Call("log", prefix+": "+args)
			return
		}
		console.Call("log", args)
	}, funcr.Options{Verbosity: verbosity})
}
