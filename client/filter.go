package client

import (
	"sort"
	"strings"

	"github.com/bhetghat/bhetghat-server/models"
)

// Sort options for the browse view.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

// Price-type filters.
const (
	PriceAny  = ""
	PriceFree = "free"
	PricePaid = "paid"
)

// Filter is the browse view's client-side filter state. The zero value
// matches everything, sorted newest first.
type Filter struct {
	Search    string // case-insensitive substring over title and organizer
	Category  string
	Date      string // exact match on the stored date string
	Location  string // case-insensitive substring over location
	PriceType string // PriceAny, PriceFree or PricePaid
	Sort      string // SortNewest (default) or SortOldest
}

// Apply filters and sorts the product list without mutating the input.
func (f Filter) Apply(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			out = append(out, p)
		}
	}

	switch f.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

func (f Filter) matches(p models.Product) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.OrganizerName), q) {
			return false
		}
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Date != "" && (p.Date == nil || *p.Date != f.Date) {
		return false
	}
	if f.Location != "" {
		if p.Location == nil || !strings.Contains(strings.ToLower(*p.Location), strings.ToLower(f.Location)) {
			return false
		}
	}
	switch f.PriceType {
	case PriceFree:
		if p.Price != 0 {
			return false
		}
	case PricePaid:
		if p.Price <= 0 {
			return false
		}
	}
	return true
}
