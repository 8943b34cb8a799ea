// Package mailer composes mail messages from view templates and delivers them
// through pluggable transports.
//
// # Architecture
//
// The package consists of four main components:
//
//   - View: Interface that view engines implement (see pkg/view and its subpackages)
//   - Template: Renders the views of one compose call and writes the bodies to a Message
//   - Composer: Holds default layouts, the view root and the engine; creates a Template per call
//   - Mailer: Creates messages through a Composer and sends them through a Sender
//
// # Composing
//
// A view specification names the HTML view, the text view, or both:
//
//	c := mailer.NewComposer(view.New(os.DirFS("templates")), "mail")
//
//	msg := &mailer.Message{To: []string{"user@example.com"}}
//
//	// HTML body from "contact", text body derived by stripping tags.
//	err := c.Compose(msg, mailer.Single("contact"), mailer.Params{"Name": "John"})
//
//	// Separate views for both bodies.
//	err = c.Compose(msg, mailer.Pair("contact-html", "contact-text"), params)
//
// Each rendered body is wrapped in the layout for its kind ("layouts/html" and
// "layouts/text" by default). The layout receives the body as the "content"
// parameter next to the caller's parameters. NoLayout disables wrapping:
//
//	c.SetHTMLLayout(mailer.NoLayout)
//
// When no text view is named, the text body is derived from the final HTML
// body: the <body> content is taken, scripts and styles are dropped and the
// remaining markup is stripped.
//
// Every view also receives the message being composed as the "message"
// parameter. The message is only modified after all renders succeed.
//
// # Subjects
//
// A view may start its output with a YAML frontmatter block. The subject key
// sets the message subject and the block is removed from the body:
//
//	---
//	subject: Welcome {{.Name}}!
//	---
//	<p>Hello {{.Name}}, welcome to our service!</p>
//
// The HTML view's subject takes precedence over the text view's.
//
// # Sending
//
// Mailer combines a Composer with a Sender:
//
//	m := mailer.New(c, resend.New(resendCfg), mailer.Config{
//		From:            "team@example.com",
//		FallbackSubject: "Notification",
//	})
//
//	msg, err := m.Compose(mailer.Single("welcome"), mailer.Params{"Name": "John"})
//	if err != nil {
//		return err
//	}
//	msg.To = []string{"john@example.com"}
//	err = m.Send(ctx, msg)
//
// # Errors
//
// The package defines several error variables for specific failure cases:
//
//   - ErrViewNotFound: A view or layout could not be resolved
//   - ErrRender: The view engine failed while rendering
//   - ErrInvalidViewSpec: A view specification had an unsupported shape
//   - ErrInvalidFrontmatter: Rendered output had malformed frontmatter
//   - ErrNoView: The composer has no view engine
//   - ErrNoMessage: A nil message was passed to Compose or Send
//   - ErrNoRecipient, ErrNoSubject, ErrNoContent: Message validation failed
//   - ErrSendFailed: Message delivery failed
package mailer
