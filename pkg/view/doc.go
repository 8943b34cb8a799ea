// Package view provides a mailer.View backed by Go templates stored in an fs.FS.
//
// View names resolve relative to the base path passed by the composer. When a
// name has no extension the engine tries .html, .txt, .md and .tmpl in order:
//
//	engine := view.New(os.DirFS("templates"))
//	c := mailer.NewComposer(engine, "mail")
//	// "contact" resolves to templates/mail/contact.html
//
// The extension selects the template flavor:
//
//   - .html, .htm: html/template with contextual escaping
//   - .md, .markdown: text/template, then Markdown to HTML via goldmark
//   - anything else: text/template
//
// Markdown views support call-to-action buttons:
//
//	[!button|Verify Email]({{.URL}})
//
// # Localization
//
// With WithLanguage (or ForLanguage) the engine searches a directory named
// after the language tag and its parents before the base path, so with
// pt-BR the lookup order for "contact" is mail/pt-BR, mail/pt, mail.
//
// Parsed views are cached per resolved file and shared between engines
// derived with ForLanguage.
package view
