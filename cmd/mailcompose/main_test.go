package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailcompose/pkg/mailer"
)

func writeViews(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func goViews(t *testing.T) string {
	t.Helper()

	return writeViews(t, map[string]string{
		"layouts/html.html": `<html><body>{{.content}}</body></html>`,
		"layouts/text.txt":  "{{.content}}\n--\nTeam",
		"welcome.html":      "---\nsubject: Welcome {{.name}}\n---\n<p>Hi {{.name}}</p>",
		"welcome-text.txt":  `Hi {{.name}}, items: {{range .item}}{{.}} {{end}}`,
		"plain.html":        `<p>No subject</p>`,
		"de/welcome.html":   "---\nsubject: Willkommen {{.name}}\n---\n<p>Hallo {{.name}}</p>",
	})
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender_HTML(t *testing.T) {
	views := goViews(t)

	out, err := run(t, "render", "welcome", "--views", views, "--param", "name=Alice")
	require.NoError(t, err)
	assert.Equal(t, "<html><body><p>Hi Alice</p></body></html>", out)
}

func TestRender_Text(t *testing.T) {
	views := goViews(t)

	out, err := run(t, "render", "welcome", "--views", views, "-p", "name=Alice", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "Hi Alice", out)

	out, err = run(t, "render", "welcome", "--views", views,
		"--text-view", "welcome-text",
		"-p", "name=Alice", "-p", "item=a", "-p", "item=b",
		"-f", "text",
	)
	require.NoError(t, err)
	assert.Equal(t, "Hi Alice, items: a b \n--\nTeam", out)
}

func TestRender_NoLayout(t *testing.T) {
	views := goViews(t)

	out, err := run(t, "render", "welcome", "--views", views, "-p", "name=Bo", "--no-layout")
	require.NoError(t, err)
	assert.Equal(t, "<p>Hi Bo</p>", out)
}

func TestRender_EML(t *testing.T) {
	views := goViews(t)

	out, err := run(t, "render", "plain", "--views", views,
		"--format", "eml",
		"--from", "team@example.com",
		"--to", "alice@example.com",
		"--subject", "Fallback",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Subject: Fallback")
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "team@example.com")
	assert.Contains(t, out, "multipart/alternative")
}

func TestRender_ParamsFile(t *testing.T) {
	views := goViews(t)
	paramsFile := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(paramsFile, []byte("name: FromFile\n"), 0o644))

	out, err := run(t, "render", "welcome", "--views", views, "--params", paramsFile)
	require.NoError(t, err)
	assert.Contains(t, out, "<p>Hi FromFile</p>")

	out, err = run(t, "render", "welcome", "--views", views, "--params", paramsFile, "-p", "name=Flag")
	require.NoError(t, err)
	assert.Contains(t, out, "<p>Hi Flag</p>", "flags override the file")
}

func TestRender_Language(t *testing.T) {
	views := goViews(t)

	out, err := run(t, "render", "welcome", "--views", views, "-p", "name=Anna", "--lang", "de-AT")
	require.NoError(t, err)
	assert.Contains(t, out, "<p>Hallo Anna</p>")

	_, err = run(t, "render", "welcome", "--views", views, "--lang", "not a tag!")
	require.Error(t, err)
}

func TestRender_Pongo2(t *testing.T) {
	views := writeViews(t, map[string]string{
		"layouts/html.tpl": `<html><body>{{ content }}</body></html>`,
		"welcome.tpl":      `<p>Hi {{ name }}</p>`,
	})

	out, err := run(t, "render", "welcome", "--views", views, "--engine", "pongo2", "-p", "name=<Bob>")
	require.NoError(t, err)
	assert.Equal(t, "<html><body><p>Hi &lt;Bob&gt;</p></body></html>", out)

	_, err = run(t, "render", "welcome", "--views", views, "--engine", "pongo2", "--lang", "de")
	require.Error(t, err)
}

func TestRender_Errors(t *testing.T) {
	views := goViews(t)

	_, err := run(t, "render", "missing", "--views", views)
	require.ErrorIs(t, err, mailer.ErrViewNotFound)

	_, err = run(t, "render", "welcome", "--views", views, "--engine", "jinja")
	require.ErrorContains(t, err, "unknown engine")

	_, err = run(t, "render", "welcome", "--views", views, "--format", "pdf")
	require.ErrorContains(t, err, "unknown format")

	_, err = run(t, "render", "welcome", "--views", views, "-p", "novalue")
	require.ErrorContains(t, err, "expected key=value")
}

func TestRender_EnvConfig(t *testing.T) {
	views := goViews(t)
	t.Setenv("MAILCOMPOSE_VIEWS", views)
	t.Setenv("MAILER_FROM", "env@example.com")
	t.Setenv("MAILER_FALLBACK_SUBJECT", "From env")

	out, err := run(t, "render", "plain", "--format", "eml")
	require.NoError(t, err)
	assert.Contains(t, out, "env@example.com")
	assert.Contains(t, out, "Subject: From env")
}

func TestSend_FileTransport(t *testing.T) {
	views := goViews(t)
	outbox := filepath.Join(t.TempDir(), "outbox")

	out, err := run(t, "send", "welcome", "--views", views,
		"-p", "name=Alice",
		"--to", "alice@example.com",
		"--from", "team@example.com",
		"--out", outbox,
	)
	require.NoError(t, err)
	assert.Contains(t, out, `sent "Welcome Alice" to 1 recipient(s)`)

	entries, err := os.ReadDir(outbox)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	raw, err := os.ReadFile(filepath.Join(outbox, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Subject: Welcome Alice")
}

func TestSend_RequiresTransport(t *testing.T) {
	views := goViews(t)
	t.Setenv("RESEND_API_KEY", "")
	t.Setenv("MAILCOMPOSE_OUTBOX", "")

	_, err := run(t, "send", "welcome", "--views", views, "--to", "alice@example.com")
	require.ErrorContains(t, err, "no transport configured")

	_, err = run(t, "send", "welcome", "--views", views)
	require.Error(t, err, "--to is required")
}

func TestParseParams(t *testing.T) {
	t.Parallel()

	params, err := parseParams([]string{"name=Alice", "tag=a", "tag=b", "tag=c", "expr=a=b", "empty="})
	require.NoError(t, err)
	assert.Equal(t, mailer.Params{
		"name":  "Alice",
		"tag":   []string{"a", "b", "c"},
		"expr":  "a=b",
		"empty": "",
	}, params)

	_, err = parseParams([]string{"=value"})
	require.Error(t, err)
}
