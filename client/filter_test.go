package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bhetghat/bhetghat-server/models"
)

func strp(s string) *string { return &s }

func sampleProducts() []models.Product {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []models.Product{
		{
			ID:            primitive.NewObjectID(),
			Title:         "Jazz Night",
			OrganizerName: "Blue Note Collective",
			Description:   strp("An evening of live saxophone"),
			Category:      "Music",
			Price:         25,
			Date:          strp("2025-06-10"),
			Location:      strp("Kathmandu"),
			CreatedAt:     base,
		},
		{
			ID:            primitive.NewObjectID(),
			Title:         "Go Meetup",
			OrganizerName: "Tech Circle",
			Category:      "Technology",
			Price:         0,
			Date:          strp("2025-06-12"),
			Location:      strp("Pokhara Lakeside"),
			CreatedAt:     base.Add(24 * time.Hour),
		},
		{
			ID:            primitive.NewObjectID(),
			Title:         "Street Food Walk",
			OrganizerName: "Foodies",
			Category:      "Food",
			Price:         10,
			CreatedAt:     base.Add(48 * time.Hour),
		},
	}
}

func titles(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Title
	}
	return out
}

func TestFilterZeroValueSortsNewestFirst(t *testing.T) {
	got := Filter{}.Apply(sampleProducts())
	assert.Equal(t, []string{"Street Food Walk", "Go Meetup", "Jazz Night"}, titles(got))
}

func TestFilterOldestFirst(t *testing.T) {
	got := Filter{Sort: SortOldest}.Apply(sampleProducts())
	assert.Equal(t, []string{"Jazz Night", "Go Meetup", "Street Food Walk"}, titles(got))
}

func TestFilterSearchMatchesTitleAndOrganizer(t *testing.T) {
	got := Filter{Search: "jazz"}.Apply(sampleProducts())
	assert.Equal(t, []string{"Jazz Night"}, titles(got))

	got = Filter{Search: "TECH"}.Apply(sampleProducts())
	assert.Equal(t, []string{"Go Meetup"}, titles(got))

	// Description text is out of scope for the search box.
	got = Filter{Search: "saxophone"}.Apply(sampleProducts())
	assert.Empty(t, got)

	got = Filter{Search: "nothing matches this"}.Apply(sampleProducts())
	assert.Empty(t, got)
}

func TestFilterCategory(t *testing.T) {
	got := Filter{Category: "Food"}.Apply(sampleProducts())
	assert.Equal(t, []string{"Street Food Walk"}, titles(got))
}

func TestFilterDateExactMatch(t *testing.T) {
	got := Filter{Date: "2025-06-12"}.Apply(sampleProducts())
	assert.Equal(t, []string{"Go Meetup"}, titles(got))

	// Products with no stored date never match a date filter.
	got = Filter{Date: "2025-01-01"}.Apply(sampleProducts())
	assert.Empty(t, got)
}

func TestFilterLocationSubstring(t *testing.T) {
	got := Filter{Location: "lakeside"}.Apply(sampleProducts())
	assert.Equal(t, []string{"Go Meetup"}, titles(got))
}

func TestFilterPriceType(t *testing.T) {
	got := Filter{PriceType: PriceFree}.Apply(sampleProducts())
	assert.Equal(t, []string{"Go Meetup"}, titles(got))

	got = Filter{PriceType: PricePaid}.Apply(sampleProducts())
	assert.Equal(t, []string{"Street Food Walk", "Jazz Night"}, titles(got))
}

func TestFilterCombined(t *testing.T) {
	got := Filter{Search: "o", PriceType: PricePaid, Category: "Music"}.Apply(sampleProducts())
	assert.Equal(t, []string{"Jazz Night"}, titles(got))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	_ = Filter{Sort: SortOldest}.Apply(products)
	assert.Equal(t, "Jazz Night", products[0].Title)
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory("Technology"))
	assert.True(t, ValidCategory("Music"))
	assert.False(t, ValidCategory("Quantum Basket Weaving"))
	assert.False(t, ValidCategory(""))
}
