package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocoderSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Kathmandu", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"27.7172","lon":"85.3240","display_name":"Kathmandu, Nepal"}]`))
	}))
	defer srv.Close()

	place, err := NewGeocoder(srv.URL).Search(context.Background(), "Kathmandu")
	require.NoError(t, err)
	assert.InDelta(t, 27.7172, place.Lat, 1e-9)
	assert.InDelta(t, 85.3240, place.Lng, 1e-9)
	assert.Equal(t, "Kathmandu, Nepal", place.DisplayName)
}

func TestGeocoderSearchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewGeocoder(srv.URL).Search(context.Background(), "nowhere at all")
	assert.Error(t, err)
}

func TestGeocoderReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "27.7", r.URL.Query().Get("lat"))
		assert.Equal(t, "85.3", r.URL.Query().Get("lon"))
		w.Write([]byte(`{"display_name":"Thamel, Kathmandu"}`))
	}))
	defer srv.Close()

	name, err := NewGeocoder(srv.URL).Reverse(context.Background(), 27.7, 85.3)
	require.NoError(t, err)
	assert.Equal(t, "Thamel, Kathmandu", name)
}

func TestGeocoderReverseUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewGeocoder(srv.URL).Reverse(context.Background(), 27.7, 85.3)
	assert.Error(t, err)
}

func TestParseLatLng(t *testing.T) {
	tests := []struct {
		in       string
		lat, lng float64
		ok       bool
	}{
		{"27.7172,85.3240", 27.7172, 85.3240, true},
		{" 27.7 , 85.3 ", 27.7, 85.3, true},
		{"-33.86,151.21", -33.86, 151.21, true},
		{"Kathmandu Durbar Square", 0, 0, false},
		{"27.7", 0, 0, false},
		{"27.7,85.3,extra", 0, 0, false},
		{"91.0,85.3", 0, 0, false},
		{"27.7,181.0", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		lat, lng, ok := ParseLatLng(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.InDelta(t, tt.lat, lat, 1e-9)
			assert.InDelta(t, tt.lng, lng, 1e-9)
		}
	}
}
