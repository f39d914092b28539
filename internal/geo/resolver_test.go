package geo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	coords map[string]Coordinate
}

func (s stubGeocoder) Geocode(_ context.Context, address string) (Coordinate, bool) {
	c, ok := s.coords[address]
	return c, ok
}

type countingRouter struct {
	calls int
	km    float64
	ok    bool

	origin      Coordinate
	destination Coordinate
}

func (r *countingRouter) Distance(_ context.Context, origin, destination Coordinate) (float64, bool) {
	r.calls++
	r.origin = origin
	r.destination = destination
	return r.km, r.ok
}

func TestResolveDistanceDelegatesToRouter(t *testing.T) {
	geocoder := stubGeocoder{coords: map[string]Coordinate{
		"pick up here": {Lon: 121.0, Lat: 14.5},
		"drop off":     {Lon: 120.9, Lat: 14.6},
	}}
	router := &countingRouter{km: 5.0, ok: true}

	r := NewResolver(geocoder, router)
	km, ok := r.ResolveDistance(context.Background(), "pick up here", "drop off")
	require.True(t, ok)
	assert.Equal(t, 5.0, km)
	assert.Equal(t, 1, router.calls)
	assert.Equal(t, Coordinate{Lon: 121.0, Lat: 14.5}, router.origin)
	assert.Equal(t, Coordinate{Lon: 120.9, Lat: 14.6}, router.destination)
}

func TestResolveDistanceShortCircuitsOnOriginMiss(t *testing.T) {
	geocoder := stubGeocoder{coords: map[string]Coordinate{
		"drop off": {Lon: 120.9, Lat: 14.6},
	}}
	router := &countingRouter{km: 5.0, ok: true}

	r := NewResolver(geocoder, router)
	_, ok := r.ResolveDistance(context.Background(), "pick up here", "drop off")
	assert.False(t, ok)
	assert.Zero(t, router.calls)
}

func TestResolveDistanceShortCircuitsOnDestinationMiss(t *testing.T) {
	geocoder := stubGeocoder{coords: map[string]Coordinate{
		"pick up here": {Lon: 121.0, Lat: 14.5},
	}}
	router := &countingRouter{km: 5.0, ok: true}

	r := NewResolver(geocoder, router)
	_, ok := r.ResolveDistance(context.Background(), "pick up here", "drop off")
	assert.False(t, ok)
	assert.Zero(t, router.calls)
}

func TestResolveDistancePropagatesRouterAbsence(t *testing.T) {
	geocoder := stubGeocoder{coords: map[string]Coordinate{
		"a": {Lon: 1, Lat: 2},
		"b": {Lon: 3, Lat: 4},
	}}
	router := &countingRouter{ok: false}

	r := NewResolver(geocoder, router)
	_, ok := r.ResolveDistance(context.Background(), "a", "b")
	assert.False(t, ok)
	assert.Equal(t, 1, router.calls)
}
