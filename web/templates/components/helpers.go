package components

import (
	"context"
	"fmt"
	"io"

	"movie-ticket-cart/internal/middleware"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type printerKey struct{}

// WithPrinter stores the message printer prices are formatted with
func WithPrinter(ctx context.Context, p *message.Printer) context.Context {
	return context.WithValue(ctx, printerKey{}, p)
}

func printer(ctx context.Context) *message.Printer {
	if p, ok := ctx.Value(printerKey{}).(*message.Printer); ok && p != nil {
		return p
	}
	return message.NewPrinter(language.AmericanEnglish)
}

// FormatPrice renders an amount in cents as dollars, e.g. 1200 -> "$12.00"
func FormatPrice(ctx context.Context, cents int) string {
	return printer(ctx).Sprintf("$%.2f", float64(cents)/100)
}

// getCSRFToken gets the CSRF token from the request context
func getCSRFToken(ctx context.Context) string {
	return middleware.GetCSRFToken(ctx)
}

// CSRFField renders the hidden form input carrying the CSRF token
func CSRFField() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.printf(`<input type="hidden" name="%s" value="%s">`, middleware.CSRFFormField, getCSRFToken(ctx))
		return hw.err
	})
}

// htmlWriter keeps the first write error so components can write straight through
type htmlWriter struct {
	w   io.Writer
	err error
}

func newHTMLWriter(w io.Writer) *htmlWriter {
	return &htmlWriter{w: w}
}

// raw writes trusted markup as is
func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// printf formats markup with %s verbs, escaping every argument
func (hw *htmlWriter) printf(format string, args ...any) {
	escaped := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case string:
			escaped[i] = templ.EscapeString(v)
		default:
			escaped[i] = templ.EscapeString(fmt.Sprint(v))
		}
	}
	hw.raw(fmt.Sprintf(format, escaped...))
}

// render writes a child component
func (hw *htmlWriter) render(ctx context.Context, c templ.Component) {
	if hw.err != nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}
