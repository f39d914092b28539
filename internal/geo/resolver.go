package geo

import (
	"context"
	"log/slog"

	"github.com/padyakph/hatidbot/internal/logger"
)

// AddressGeocoder resolves a free-text address into a coordinate pair.
type AddressGeocoder interface {
	Geocode(ctx context.Context, address string) (Coordinate, bool)
}

// DistanceRouter computes a driving distance between two coordinates.
type DistanceRouter interface {
	Distance(ctx context.Context, origin, destination Coordinate) (float64, bool)
}

// Resolver turns two address strings into a driving distance in kilometers.
type Resolver struct {
	geocoder AddressGeocoder
	router   DistanceRouter
	log      *slog.Logger
}

// NewResolver wires a geocoder and a router into a Resolver.
func NewResolver(geocoder AddressGeocoder, router DistanceRouter) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		router:   router,
		log:      logger.Component("geo"),
	}
}

// ResolveDistance geocodes both addresses sequentially and delegates to the
// router. If either geocode comes back absent it short-circuits without
// calling the router.
func (r *Resolver) ResolveDistance(ctx context.Context, originAddress, destinationAddress string) (float64, bool) {
	origin, ok := r.geocoder.Geocode(ctx, originAddress)
	if !ok {
		r.skip(ctx, "origin", originAddress)
		return 0, false
	}
	destination, ok := r.geocoder.Geocode(ctx, destinationAddress)
	if !ok {
		r.skip(ctx, "destination", destinationAddress)
		return 0, false
	}
	return r.router.Distance(ctx, origin, destination)
}

func (r *Resolver) skip(ctx context.Context, role, address string) {
	r.log.LogAttrs(ctx, slog.LevelWarn, "resolve.skip",
		slog.String("status", "skip"),
		slog.String("cause", "geocode absent"),
		slog.String("role", role),
		slog.String("query", logger.SanitizeLimit(address, 128)),
	)
}
