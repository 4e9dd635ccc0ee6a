package middleware

import (
	"fmt"
	"html"
	"net/http"
)

// IsHTMXRequest checks if the request is from HTMX
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// HTMXRedirect sends the client to url, via HX-Redirect for HTMX requests
func HTMXRedirect(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// writeError answers with an inline alert for HTMX requests and a plain error otherwise
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if !IsHTMXRequest(r) {
		http.Error(w, message, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<div class="alert alert-error" role="alert"><p>%s</p></div>`, html.EscapeString(message))
}
