package pages

import (
	"context"
	"io"

	"movie-ticket-cart/web/templates/components"

	"github.com/a-h/templ"
)

// HomeView is the movie grid next to the cart
type HomeView struct {
	Movies components.MovieListView
	Cart   components.CartView
}

// Home renders the landing page
func Home(view HomeView) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="layout">`); err != nil {
			return err
		}
		if err := components.MovieList(view.Movies).Render(ctx, w); err != nil {
			return err
		}
		if err := components.Cart(view.Cart).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
	return Layout(AppName, body)
}
