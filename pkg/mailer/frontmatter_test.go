package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFrontmatter_WithMetadata(t *testing.T) {
	t.Parallel()

	fm, err := parseFrontmatter(`---
Subject: Welcome Email
Author: System
---
<h1>Hello World</h1>
`)
	require.NoError(t, err)
	require.Equal(t, "Welcome Email", fm.Metadata["Subject"])
	require.Equal(t, "System", fm.Metadata["Author"])
	require.Equal(t, "<h1>Hello World</h1>\n", fm.Body)

	subject, ok := fm.subject()
	require.True(t, ok)
	require.Equal(t, "Welcome Email", subject)
}

func TestParseFrontmatter_WithoutMetadata(t *testing.T) {
	t.Parallel()

	content := "<p>No frontmatter here.</p>"
	fm, err := parseFrontmatter(content)
	require.NoError(t, err)
	require.Empty(t, fm.Metadata)
	require.Equal(t, content, fm.Body)

	_, ok := fm.subject()
	require.False(t, ok)
}

func TestParseFrontmatter_EmptyBlock(t *testing.T) {
	t.Parallel()

	fm, err := parseFrontmatter("---\n---\nBody content here.")
	require.NoError(t, err)
	require.Empty(t, fm.Metadata)
	require.Equal(t, "Body content here.", fm.Body)
}

func TestParseFrontmatter_WindowsLineEndings(t *testing.T) {
	t.Parallel()

	fm, err := parseFrontmatter("---\r\nsubject: Hi\r\n---\r\nBody")
	require.NoError(t, err)
	require.Equal(t, "Hi", fm.Metadata["subject"])
	require.Equal(t, "Body", fm.Body)
}

func TestParseFrontmatter_DashesInsideBodyAreKept(t *testing.T) {
	t.Parallel()

	content := "Line one\n---\nLine two"
	fm, err := parseFrontmatter(content)
	require.NoError(t, err)
	require.Equal(t, content, fm.Body)

	// A rule starting the body is not a delimiter either.
	fm, err = parseFrontmatter("------\nrule")
	require.NoError(t, err)
	require.Equal(t, "------\nrule", fm.Body)
}

func TestParseFrontmatter_MissingClosingDelimiter(t *testing.T) {
	t.Parallel()

	_, err := parseFrontmatter("---\nsubject: Hi\nbody without end")
	require.ErrorIs(t, err, ErrInvalidFrontmatter)
}

func TestParseFrontmatter_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := parseFrontmatter("---\nsubject: [broken\n---\nbody")
	require.ErrorIs(t, err, ErrInvalidFrontmatter)
}

func TestFrontmatter_SubjectIgnoresNonStrings(t *testing.T) {
	t.Parallel()

	fm, err := parseFrontmatter("---\nsubject: 42\n---\nbody")
	require.NoError(t, err)

	_, ok := fm.subject()
	require.False(t, ok)
}

func TestFrontmatter_SubjectDecodesEntities(t *testing.T) {
	t.Parallel()

	fm, err := parseFrontmatter("---\nsubject: Welcome Tom &amp; Jerry&#39;s\n---\n<p>Hi</p>")
	require.NoError(t, err)

	subject, ok := fm.subject()
	require.True(t, ok)
	require.Equal(t, "Welcome Tom & Jerry's", subject)
}

func TestCutFrontmatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantBlock string
		wantBody  string
		wantFound bool
	}{
		{
			name:      "block with metadata",
			content:   "---\nsubject: Hi\n---\n# Hello\n",
			wantBlock: "---\nsubject: Hi\n---\n",
			wantBody:  "# Hello\n",
			wantFound: true,
		},
		{
			name:      "empty block",
			content:   "---\n---\nbody",
			wantBlock: "---\n---\n",
			wantBody:  "body",
			wantFound: true,
		},
		{
			name:      "windows line endings",
			content:   "---\r\nsubject: Hi\r\n---\r\nbody",
			wantBlock: "---\r\nsubject: Hi\r\n---\r\n",
			wantBody:  "body",
			wantFound: true,
		},
		{
			name:     "no block",
			content:  "# Hello\n\n---\n",
			wantBody: "# Hello\n\n---\n",
		},
		{
			name:     "unterminated block",
			content:  "---\nsubject: Hi\n# Hello",
			wantBody: "---\nsubject: Hi\n# Hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			block, body, found := CutFrontmatter(tt.content)
			require.Equal(t, tt.wantFound, found)
			require.Equal(t, tt.wantBlock, block)
			require.Equal(t, tt.wantBody, body)
		})
	}
}
