package pages

import (
	"context"
	"io"

	"movie-ticket-cart/internal/middleware"

	"github.com/a-h/templ"
)

const AppName = "Movie Tickets"

// Layout wraps a page body in the document shell.
// HTMX requests send the CSRF token through the hx-headers attribute.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if title == "" {
			title = AppName
		} else if title != AppName {
			title = title + " | " + AppName
		}

		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1.0">`+
			`<title>`+templ.EscapeString(title)+`</title>`+
			`<link href="/static/css/app.css" rel="stylesheet">`+
			`<script src="https://unpkg.com/htmx.org@1.9.12"></script>`+
			`</head><body hx-headers='{"`+middleware.CSRFHeader+`": "`+templ.EscapeString(middleware.GetCSRFToken(ctx))+`"}'>`+
			`<header><h1><a href="/">`+templ.EscapeString(AppName)+`</a></h1></header><main>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
