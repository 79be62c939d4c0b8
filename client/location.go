package client

import (
	"context"
	"fmt"

	"github.com/bhetghat/bhetghat-server/utils"
)

// LocationPicker backs the event form's map picker: a free-text search
// resolves to coordinates that go into ProductForm.Location as "lat,lng",
// with the display name shown to the user.
type LocationPicker struct {
	geo *utils.Geocoder
}

func NewLocationPicker(geocodeBaseURL string) *LocationPicker {
	return &LocationPicker{geo: utils.NewGeocoder(geocodeBaseURL)}
}

// PickedLocation is a confirmed selection.
type PickedLocation struct {
	Location    string // "lat,lng", the stored form value
	DisplayName string
}

// Search resolves a query to its best match.
func (p *LocationPicker) Search(ctx context.Context, query string) (*PickedLocation, error) {
	place, err := p.geo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return &PickedLocation{
		Location:    fmt.Sprintf("%g,%g", place.Lat, place.Lng),
		DisplayName: place.DisplayName,
	}, nil
}
