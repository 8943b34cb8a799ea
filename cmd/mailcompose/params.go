package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailcompose/pkg/mailer"
)

// messageFlags are the flags shared by commands that compose a message.
type messageFlags struct {
	textView   string
	paramsFile string
	params     []string
	subject    string
	from       string
}

func (f *messageFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.textView, "text-view", "", "separate view for the text body")
	flags.StringArrayVarP(&f.params, "param", "p", nil, "view parameter as key=value (repeatable)")
	flags.StringVar(&f.paramsFile, "params", "", "YAML file with view parameters")
	flags.StringVar(&f.subject, "subject", "", "subject used when the views do not set one")
	flags.StringVar(&f.from, "from", "", "sender address (env MAILER_FROM)")
}

// spec returns the view specification for the html view name.
func (f *messageFlags) spec(htmlView string) mailer.ViewSpec {
	if f.textView == "" {
		return mailer.Single(htmlView)
	}
	return mailer.Pair(htmlView, f.textView)
}

// load merges the params file and the key=value flags, flags winning.
func (f *messageFlags) load() (mailer.Params, error) {
	params := mailer.Params{}
	if f.paramsFile != "" {
		fileParams, err := readParamsFile(f.paramsFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fileParams {
			params[k] = v
		}
	}

	flagParams, err := parseParams(f.params)
	if err != nil {
		return nil, err
	}
	for k, v := range flagParams {
		params[k] = v
	}
	return params, nil
}

// parseParams converts key=value pairs into params.
// A key given more than once collects its values into a []string.
func parseParams(pairs []string) (mailer.Params, error) {
	params := make(mailer.Params, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", pair)
		}

		switch prev := params[key].(type) {
		case nil:
			params[key] = value
		case string:
			params[key] = []string{prev, value}
		case []string:
			params[key] = append(prev, value)
		}
	}
	return params, nil
}

func readParamsFile(name string) (mailer.Params, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file: %w", err)
	}

	params := mailer.Params{}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse params file %s: %w", name, err)
	}
	return params, nil
}
