package mailer

import "errors"

var (
	// ErrViewNotFound indicates a view name could not be resolved to a file.
	ErrViewNotFound = errors.New("view not found")

	// ErrRender indicates the view engine failed while rendering a view or layout.
	ErrRender = errors.New("failed to render view")

	// ErrInvalidViewSpec indicates a view specification of an unsupported shape.
	ErrInvalidViewSpec = errors.New("invalid view specification")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter in rendered view output.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")

	// ErrNoView indicates the composer has no view engine configured.
	ErrNoView = errors.New("no view engine configured")

	// ErrNoMessage indicates a nil message was passed for composing or sending.
	ErrNoMessage = errors.New("message is nil")

	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("message must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("message must have a subject")

	// ErrNoContent indicates neither HTML nor text body was set.
	ErrNoContent = errors.New("message must have a body")

	// ErrSendFailed indicates message delivery failed.
	ErrSendFailed = errors.New("failed to send message")
)
