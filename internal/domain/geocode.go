package domain

import (
	"context"
	"log/slog"
)

// ResolveLocations attempts to fill in pending tank locations by forward
// geocoding their street addresses. If geocoder is nil, or a tank has no
// address, or geocoding fails, the tank is left as-is (graceful degradation —
// it will surface as MissingLocation in the analysis report rather than
// receive a guessed coordinate).
func ResolveLocations(ctx context.Context, batch SiteBatch, geocoder Geocoder, logger *slog.Logger) SiteBatch {
	if geocoder == nil {
		return batch
	}

	tanks := make([]Tank, len(batch.Tanks))
	copy(tanks, batch.Tanks)

	for i := range tanks {
		if tanks[i].Location != nil || tanks[i].Address == "" {
			continue
		}

		result, err := geocoder.ForwardGeocode(ctx, tanks[i].Address)
		if err != nil {
			logger.Warn("geocoding failed",
				"tank_id", tanks[i].ID,
				"address", tanks[i].Address,
				"error", err,
			)
			continue
		}
		if result.Lat == 0 && result.Lon == 0 {
			continue
		}

		tanks[i].Location = &Point{Lat: result.Lat, Lon: result.Lon}
		tanks[i].LocationSource = "geocoded"
	}

	batch.Tanks = tanks
	return batch
}
