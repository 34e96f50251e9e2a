package domain

// Unit conversion constants. Volume arithmetic stays in double precision
// end to end; rounding happens only at output formatting.
const (
	// DefaultGallonsPerCubicFoot converts cubic feet to US gallons.
	// Overridable per batch for unit-system flexibility.
	DefaultGallonsPerCubicFoot = 7.48052

	// FeetPerMeter converts survey dimensions declared in meters.
	FeetPerMeter = 3.28084

	// LitersPerGallon converts declared capacities in liters.
	LitersPerGallon = 3.78541

	// MetersPerDegree is the length of one degree of latitude at the
	// surface. Longitude degrees shrink by cos(latitude); the projection
	// applies that scaling.
	MetersPerDegree = 111320.0

	// FeetPerDegree is MetersPerDegree expressed in feet.
	FeetPerDegree = MetersPerDegree * FeetPerMeter
)

// MetersToFeet converts a length in meters to feet.
func MetersToFeet(m float64) float64 {
	return m * FeetPerMeter
}

// LitersToGallons converts a volume in liters to US gallons.
func LitersToGallons(l float64) float64 {
	return l / LitersPerGallon
}

// CubicFeetToGallons converts a volume in cubic feet to gallons using the
// given conversion constant (pass 0 to use the default).
func CubicFeetToGallons(cuft, gallonsPerCubicFoot float64) float64 {
	if gallonsPerCubicFoot == 0 {
		gallonsPerCubicFoot = DefaultGallonsPerCubicFoot
	}
	return cuft * gallonsPerCubicFoot
}
