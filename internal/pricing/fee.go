// Package pricing computes delivery fees.
package pricing

// Fee schedule for standard deliveries, in Philippine pesos.
const (
	// BaseFee is charged on every booking regardless of distance.
	BaseFee = 59.0
	// PerKmRate is charged per kilometer of driving distance.
	PerKmRate = 10.0
)

// Fee returns the delivery fee for a driving distance in kilometers.
func Fee(distanceKm float64) float64 {
	return BaseFee + distanceKm*PerKmRate
}
