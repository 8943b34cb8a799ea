// Command mailcompose renders mail views, serves previews of them and sends
// composed messages.
//
// Usage:
//
//	mailcompose render welcome --views ./templates --param name=Alice
//	mailcompose render welcome --text-view welcome-text --format eml
//	mailcompose serve --views ./templates --addr :8080
//	mailcompose send welcome --to alice@example.com --out ./outbox
//
// Settings are read from the environment first (MAILER_*, RESEND_*, LOG_*,
// SENTRY_*, PREVIEW_*, MAILCOMPOSE_*) and flags override them.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
