package cart

import (
	"math/rand"
	"testing"

	"movie-ticket-cart/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	movieA = models.MovieRef{ID: 278, Title: "The Shawshank Redemption", PosterPath: "/a.jpg"}
	movieB = models.MovieRef{ID: 238, Title: "The Godfather", PosterPath: "/b.jpg"}
	movieC = models.MovieRef{ID: 240, Title: "The Godfather Part II", PosterPath: "/c.jpg"}
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return mustEngine(t, models.DefaultPricing())
}

func mustEngine(t *testing.T, pricing models.PricingTable, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(pricing, opts...)
	require.NoError(t, err)
	return e
}

func requireInvariants(t *testing.T, e *Engine) {
	t.Helper()
	pricing := e.Pricing()
	seen := make(map[int64]bool)
	for _, item := range e.Items() {
		require.False(t, seen[item.Movie.ID], "duplicate row for movie %d", item.Movie.ID)
		seen[item.Movie.ID] = true
		require.GreaterOrEqual(t, item.ChildQuantity, 0)
		require.GreaterOrEqual(t, item.AdultQuantity, 0)
		require.False(t, item.ChildQuantity == 0 && item.AdultQuantity == 0, "empty row for movie %d", item.Movie.ID)
		require.Equal(t, item.ChildQuantity*pricing[models.TicketChild]+item.AdultQuantity*pricing[models.TicketAdult], item.Subtotal)
	}
	require.Equal(t, e.AdultTotal()+e.ChildTotal(), e.GrandTotal())
}

func TestEngine_ExampleScenario(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.AddTicket(movieA, models.TicketAdult))
	assert.Equal(t, []LineItem{{Movie: movieA, AdultQuantity: 1, Subtotal: 1200}}, e.Items())

	require.NoError(t, e.AddTicket(movieA, models.TicketAdult))
	assert.Equal(t, []LineItem{{Movie: movieA, AdultQuantity: 2, Subtotal: 2400}}, e.Items())

	require.NoError(t, e.AddTicket(movieA, models.TicketChild))
	assert.Equal(t, []LineItem{{Movie: movieA, AdultQuantity: 2, ChildQuantity: 1, Subtotal: 3200}}, e.Items())

	require.NoError(t, e.DecrementTicket(movieA.ID, models.TicketAdult))
	require.NoError(t, e.DecrementTicket(movieA.ID, models.TicketAdult))
	assert.Equal(t, []LineItem{{Movie: movieA, ChildQuantity: 1, Subtotal: 800}}, e.Items())

	require.NoError(t, e.DecrementTicket(movieA.ID, models.TicketChild))
	assert.Empty(t, e.Items())
	assert.True(t, e.IsEmpty())

	err := e.AddTicket(movieB, models.TicketCategory("InvalidType"))
	assert.ErrorIs(t, err, models.ErrInvalidCategory)
	assert.Empty(t, e.Items())
}

func TestEngine_AddTicket(t *testing.T) {
	t.Run("new movie appends in insertion order", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.AddTicket(movieB, models.TicketChild))
		require.NoError(t, e.AddTicket(movieA, models.TicketAdult))
		require.NoError(t, e.AddTicket(movieB, models.TicketAdult))

		items := e.Items()
		require.Len(t, items, 2)
		assert.Equal(t, movieB.ID, items[0].Movie.ID)
		assert.Equal(t, movieA.ID, items[1].Movie.ID)
		assert.Equal(t, 2000, items[0].Subtotal)
		requireInvariants(t, e)
	})

	t.Run("missing price leaves cart unchanged", func(t *testing.T) {
		e := mustEngine(t, models.PricingTable{models.TicketAdult: 1200})
		require.NoError(t, e.AddTicket(movieA, models.TicketAdult))

		err := e.AddTicket(movieA, models.TicketChild)
		assert.ErrorIs(t, err, models.ErrMissingPrice)
		assert.Equal(t, []LineItem{{Movie: movieA, AdultQuantity: 1, Subtotal: 1200}}, e.Items())
	})

	t.Run("absent pricing rejects every add", func(t *testing.T) {
		e := mustEngine(t, nil)
		assert.ErrorIs(t, e.AddTicket(movieA, models.TicketAdult), models.ErrMissingPrice)
		assert.Zero(t, e.Len())
		assert.Zero(t, e.AdultTotal())
		assert.Zero(t, e.ChildTotal())
		assert.Zero(t, e.GrandTotal())
	})

	t.Run("invalid category leaves cart unchanged", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.AddTicket(movieA, models.TicketChild))
		before := e.Items()

		assert.ErrorIs(t, e.AddTicket(movieA, models.TicketCategory("Senior")), models.ErrInvalidCategory)
		assert.Equal(t, before, e.Items())
	})

	t.Run("line keeps its own movie snapshot", func(t *testing.T) {
		e := newTestEngine(t)
		movie := movieA
		require.NoError(t, e.AddTicket(movie, models.TicketAdult))
		movie.Title = "changed"

		item, _, ok := e.Find(movieA.ID)
		require.True(t, ok)
		assert.Equal(t, movieA.Title, item.Movie.Title)
	})
}

func TestEngine_DecrementTicket(t *testing.T) {
	t.Run("zero quantity is a no-op", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.AddTicket(movieA, models.TicketAdult))

		require.NoError(t, e.DecrementTicket(movieA.ID, models.TicketChild))
		assert.Equal(t, []LineItem{{Movie: movieA, AdultQuantity: 1, Subtotal: 1200}}, e.Items())
	})

	t.Run("only the named category changes", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.AddTicket(movieA, models.TicketAdult))
		require.NoError(t, e.AddTicket(movieA, models.TicketChild))
		require.NoError(t, e.AddTicket(movieA, models.TicketChild))

		require.NoError(t, e.DecrementTicket(movieA.ID, models.TicketChild))
		item, _, ok := e.Find(movieA.ID)
		require.True(t, ok)
		assert.Equal(t, 1, item.AdultQuantity)
		assert.Equal(t, 1, item.ChildQuantity)
		assert.Equal(t, 2000, item.Subtotal)
	})

	t.Run("removing the last ticket removes the row and shifts the rest", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.AddTicket(movieA, models.TicketAdult))
		require.NoError(t, e.AddTicket(movieB, models.TicketChild))
		require.NoError(t, e.AddTicket(movieC, models.TicketAdult))

		require.NoError(t, e.DecrementTicket(movieB.ID, models.TicketChild))
		items := e.Items()
		require.Len(t, items, 2)
		assert.Equal(t, movieA.ID, items[0].Movie.ID)
		assert.Equal(t, movieC.ID, items[1].Movie.ID)
		_, idx, _ := e.Find(movieC.ID)
		assert.Equal(t, 1, idx)
	})

	t.Run("unknown movie", func(t *testing.T) {
		e := newTestEngine(t)
		assert.ErrorIs(t, e.DecrementTicket(movieA.ID, models.TicketAdult), models.ErrLineItemNotFound)
	})

	t.Run("invalid category", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.AddTicket(movieA, models.TicketAdult))
		assert.ErrorIs(t, e.DecrementTicket(movieA.ID, "Student"), models.ErrInvalidCategory)
		assert.Equal(t, 1, e.Len())
	})
}

func TestEngine_RemoveTicket(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddTicket(movieA, models.TicketAdult))
	require.NoError(t, e.AddTicket(movieB, models.TicketAdult))
	require.NoError(t, e.AddTicket(movieC, models.TicketAdult))

	for _, index := range []int{-1, 3, 100} {
		before := e.Items()
		assert.ErrorIs(t, e.RemoveTicket(index), models.ErrIndexOutOfRange, "index %d", index)
		assert.Equal(t, before, e.Items())
	}

	require.NoError(t, e.RemoveTicket(0))
	items := e.Items()
	require.Len(t, items, 2)
	assert.Equal(t, movieB.ID, items[0].Movie.ID)

	require.NoError(t, e.RemoveMovie(movieC.ID))
	assert.ErrorIs(t, e.RemoveMovie(movieC.ID), models.ErrLineItemNotFound)
	assert.Equal(t, 1, e.Len())

	e.Reset()
	assert.True(t, e.IsEmpty())
	assert.ErrorIs(t, e.RemoveTicket(0), models.ErrIndexOutOfRange)
}

func TestEngine_ItemsAreCopies(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddTicket(movieA, models.TicketAdult))

	items := e.Items()
	items[0].AdultQuantity = 50
	items[0].Subtotal = 1

	item, _, _ := e.Find(movieA.ID)
	assert.Equal(t, 1, item.AdultQuantity)
	assert.Equal(t, 1200, item.Subtotal)
}

func TestEngine_Totals(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddTicket(movieA, models.TicketAdult))
	require.NoError(t, e.AddTicket(movieA, models.TicketChild))
	require.NoError(t, e.AddTicket(movieB, models.TicketAdult))
	require.NoError(t, e.AddTicket(movieB, models.TicketAdult))

	assert.Equal(t, Totals{Adult: 3600, Child: 800, Grand: 4400, Tickets: 4}, e.Totals())
}

func TestEngine_SetPricing(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddTicket(movieA, models.TicketAdult))
	require.NoError(t, e.AddTicket(movieA, models.TicketChild))

	require.NoError(t, e.SetPricing(models.PricingTable{models.TicketChild: 500, models.TicketAdult: 1000}))
	item, _, _ := e.Find(movieA.ID)
	assert.Equal(t, 1500, item.Subtotal)
	requireInvariants(t, e)

	assert.ErrorIs(t, e.SetPricing(models.PricingTable{models.TicketAdult: 1000}), models.ErrMissingPrice)
	assert.ErrorIs(t, e.SetPricing(models.PricingTable{models.TicketAdult: 1000, models.TicketChild: -1}), models.ErrNegativePrice)
	assert.Equal(t, 500, e.Pricing()[models.TicketChild])
}

func TestEngine_PricingIsNotShared(t *testing.T) {
	pricing := models.DefaultPricing()
	e := mustEngine(t, pricing)
	pricing[models.TicketAdult] = 1

	require.NoError(t, e.AddTicket(movieA, models.TicketAdult))
	assert.Equal(t, 1200, e.GrandTotal())

	e.Pricing()[models.TicketAdult] = 2
	assert.Equal(t, 1200, e.AdultTotal())
}

func TestEngine_LogsRejectedOperations(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	e := mustEngine(t, models.DefaultPricing(), WithLogger(zap.New(core)))

	_ = e.AddTicket(movieA, "Senior")
	_ = e.RemoveTicket(4)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "add_ticket", entries[0].ContextMap()["op"])
	assert.Equal(t, "remove_ticket", entries[1].ContextMap()["op"])
	assert.Equal(t, int64(4), entries[1].ContextMap()["index"])
}

func TestEngine_RandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	movies := []models.MovieRef{movieA, movieB, movieC}
	categories := []models.TicketCategory{models.TicketChild, models.TicketAdult, "Senior"}
	e := newTestEngine(t)

	for step := 0; step < 2000; step++ {
		movie := movies[rng.Intn(len(movies))]
		category := categories[rng.Intn(len(categories))]
		before := e.Items()

		switch rng.Intn(4) {
		case 0, 1:
			err := e.AddTicket(movie, category)
			if category.Valid() {
				require.NoError(t, err)
				item, _, ok := e.Find(movie.ID)
				require.True(t, ok)
				require.GreaterOrEqual(t, item.Quantity(category), 1)
				require.LessOrEqual(t, e.Len()-len(before), 1)
			} else {
				require.ErrorIs(t, err, models.ErrInvalidCategory)
				require.Equal(t, before, e.Items())
			}
		case 2:
			_ = e.DecrementTicket(movie.ID, category)
		case 3:
			index := rng.Intn(e.Len()+2) - 1
			err := e.RemoveTicket(index)
			if index < 0 || index >= len(before) {
				require.ErrorIs(t, err, models.ErrIndexOutOfRange)
				require.Equal(t, before, e.Items())
			} else {
				require.NoError(t, err)
				require.Equal(t, len(before)-1, e.Len())
			}
		}
		requireInvariants(t, e)
	}
}

func TestNewEngine_RejectsNegativePrices(t *testing.T) {
	tests := []struct {
		name    string
		pricing models.PricingTable
	}{
		{name: "negative child", pricing: models.PricingTable{models.TicketChild: -500, models.TicketAdult: 1200}},
		{name: "negative adult in partial table", pricing: models.PricingTable{models.TicketAdult: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngine(tt.pricing)
			assert.ErrorIs(t, err, models.ErrNegativePrice)
			assert.Nil(t, e)
		})
	}
}

func TestEngine_AddTicketStopsAtLimit(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Restore(models.CartSnapshot{Items: []models.CartSnapshotItem{
		{Movie: movieA, AdultQuantity: models.MaxTicketQuantity, ChildQuantity: 1},
	}}))
	before := e.Items()

	assert.ErrorIs(t, e.AddTicket(movieA, models.TicketAdult), models.ErrTicketLimit)
	assert.Equal(t, before, e.Items())

	require.NoError(t, e.AddTicket(movieA, models.TicketChild))
	requireInvariants(t, e)
}
