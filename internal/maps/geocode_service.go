// README: Google Geocoding client that resolves accommodation addresses to coordinates.
package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"
)

// ErrNoResults is returned when the Geocoding API finds nothing for an address.
var ErrNoResults = errors.New("no geocoding result")

// GeocodeService resolves accommodation addresses through the Google Geocoding API.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a GeocodeService with the given API key.
// Extra client options (e.g. maps.WithBaseURL) are passed through.
func NewGeocodeService(apiKey string, opts ...maps.ClientOption) (*GeocodeService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

// Geocode returns the coordinates of the first match for address.
func (s *GeocodeService) Geocode(ctx context.Context, address string) (float64, float64, error) {
	r := &maps.GeocodingRequest{
		Address:  address,
		Language: "ko", // Korean, matching the itinerary text
		Region:   "kr", // Bias results to Korea
	}

	results, err := s.client.Geocode(ctx, r)
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, ErrNoResults
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
