package components

import (
	"context"
	"io"
	"strconv"

	"movie-ticket-cart/internal/cart"
	"movie-ticket-cart/internal/models"

	"github.com/a-h/templ"
)

const EmptyCartText = "Cart is currently empty. Please add tickets."

// CartView is everything the cart fragment shows
type CartView struct {
	Items   []cart.LineItem
	Totals  cart.Totals
	Pricing models.PricingTable
	Error   string
}

// NewCartView reads the engine's rows and totals for rendering
func NewCartView(engine *cart.Engine) CartView {
	return CartView{
		Items:   engine.Items(),
		Totals:  engine.Totals(),
		Pricing: engine.Pricing(),
	}
}

// Cart renders the cart table, or the empty-cart message
func Cart(view CartView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.raw(`<section id="cart" class="cart" aria-live="polite"><h2>Your cart</h2>`)

		if view.Error != "" {
			hw.render(ctx, ErrorBanner(view.Error))
		}

		if len(view.Items) == 0 {
			hw.printf(`<p class="empty">%s</p>`, EmptyCartText)
			hw.raw(`</section>`)
			return hw.err
		}

		hw.raw(`<table class="cart-table"><thead><tr>`)
		hw.raw(`<th scope="col">Movie</th>`)
		for _, category := range models.TicketCategories {
			price := ""
			if p, err := view.Pricing.Price(category); err == nil {
				price = " (" + FormatPrice(ctx, p) + ")"
			}
			hw.printf(`<th scope="col">%s%s</th>`, category.String(), price)
		}
		hw.raw(`<th scope="col">Subtotal</th><th scope="col"><span class="sr-only">Remove</span></th></tr></thead><tbody>`)

		for i, item := range view.Items {
			hw.render(ctx, cartRow(i, item))
		}
		hw.raw(`</tbody><tfoot>`)

		hw.printf(`<tr class="total-adult"><th scope="row" colspan="3">Adult total</th><td colspan="2">%s</td></tr>`, FormatPrice(ctx, view.Totals.Adult))
		hw.printf(`<tr class="total-child"><th scope="row" colspan="3">Child total</th><td colspan="2">%s</td></tr>`, FormatPrice(ctx, view.Totals.Child))
		hw.printf(`<tr class="total-grand"><th scope="row" colspan="3">Grand total</th><td colspan="2">%s</td></tr>`, FormatPrice(ctx, view.Totals.Grand))
		hw.raw(`</tfoot></table>`)

		hw.raw(`<form method="post" action="/cart/clear" hx-post="/cart/clear" hx-target="#cart" hx-swap="outerHTML">`)
		hw.render(ctx, CSRFField())
		hw.raw(`<button type="submit" class="btn btn-link">Empty cart</button></form>`)

		hw.raw(`</section>`)
		return hw.err
	})
}

func cartRow(index int, item cart.LineItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		id := strconv.FormatInt(item.Movie.ID, 10)

		hw.printf(`<tr id="cart-row-%s" data-index="%s"><td>%s</td>`, id, strconv.Itoa(index), item.Movie.Title)
		for _, category := range models.TicketCategories {
			hw.raw(`<td class="quantity">`)
			hw.render(ctx, cartButton("/cart/decrement", id, category, "−", "btn btn-small"))
			hw.printf(`<span class="qty" data-category="%s">%s</span>`, category.String(), strconv.Itoa(item.Quantity(category)))
			hw.render(ctx, cartButton("/cart/add", id, category, "+", "btn btn-small"))
			hw.raw(`</td>`)
		}
		hw.printf(`<td class="subtotal">%s</td><td>`, FormatPrice(ctx, item.Subtotal))
		hw.render(ctx, cartButton("/cart/remove", id, "", "Remove", "btn btn-link"))
		hw.raw(`</td></tr>`)
		return hw.err
	})
}

// ErrorBanner renders an inline alert
func ErrorBanner(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.printf(`<div class="alert alert-error" role="alert"><p>%s</p></div>`, message)
		return hw.err
	})
}
