package handlers

import (
	"net/http"

	"movie-ticket-cart/web/templates/components"

	"github.com/a-h/templ"
	"go.uber.org/zap"
	"golang.org/x/text/message"
)

// renderer writes templ components with the configured locale
type renderer struct {
	printer *message.Printer
	logger  *zap.Logger
}

func (rn renderer) render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	ctx := r.Context()
	if rn.printer != nil {
		ctx = components.WithPrinter(ctx, rn.printer)
	}
	if err := component.Render(ctx, w); err != nil {
		// Headers are gone; all that is left is to log it
		rn.logger.Error("failed to render component", zap.String("path", r.URL.Path), zap.Error(err))
	}
}
