package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhetghat/bhetghat-server/utils"
)

func TestLocationPickerSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		w.Write([]byte(`[{"lat":"27.7172","lon":"85.324","display_name":"Kathmandu, Nepal"}]`))
	}))
	defer srv.Close()

	picked, err := NewLocationPicker(srv.URL).Search(context.Background(), "Kathmandu")
	require.NoError(t, err)
	assert.Equal(t, "27.7172,85.324", picked.Location)
	assert.Equal(t, "Kathmandu, Nepal", picked.DisplayName)

	// The stored value round-trips through the server's pair parser.
	lat, lng, ok := utils.ParseLatLng(picked.Location)
	require.True(t, ok)
	assert.InDelta(t, 27.7172, lat, 1e-9)
	assert.InDelta(t, 85.324, lng, 1e-9)
}

func TestLocationPickerNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewLocationPicker(srv.URL).Search(context.Background(), "nowhere")
	assert.Error(t, err)
}
