package domain

import "math"

// requiredDimensions lists the dimensions each shape needs for a geometric
// volume. Vertical cylinders stand on end (diameter x height); horizontal
// cylinders lie on their side, so length plays the axis role. The
// cross-section formula is identical either way.
var requiredDimensions = map[Shape][]Dimension{
	ShapeRectangular:           {DimLength, DimWidth, DimHeight},
	ShapeCylindricalVertical:   {DimDiameter, DimHeight},
	ShapeCylindricalHorizontal: {DimDiameter, DimLength},
}

// ComputeVolume derives a tank's VolumeFact, in gallons.
//
// Precedence: a Measurement with every dimension its shape requires yields a
// computed volume (source computed_from_dimensions), ignoring any declared
// capacity. Otherwise a declared Capacity is used directly (source provided).
// Otherwise the fact is unavailable with no numeric value — never a
// placeholder number.
//
// A Measurement with a recognized shape but missing dimensions returns an
// IncompleteMeasurementError alongside an unavailable fact: partial
// dimensions signal a data-entry problem that must surface, not fall back
// silently. A Measurement with an unknown shape carries no usable geometry
// and falls through to the declared capacity.
func ComputeVolume(t Tank, gallonsPerCubicFoot float64) (VolumeFact, error) {
	if t.Measurement != nil {
		required, ok := requiredDimensions[t.Measurement.Shape]
		if ok {
			missing := missingDimensions(t.Measurement, required)
			if len(missing) > 0 {
				return VolumeFact{TankID: t.ID, Source: VolumeUnavailable},
					&IncompleteMeasurementError{TankID: t.ID, Shape: t.Measurement.Shape, Missing: missing}
			}
			gallons := CubicFeetToGallons(cubicFeet(t.Measurement), gallonsPerCubicFoot)
			return VolumeFact{TankID: t.ID, Gallons: &gallons, Source: VolumeComputed}, nil
		}
	}

	if t.Capacity != nil {
		gallons := t.Capacity.Gallons
		return VolumeFact{TankID: t.ID, Gallons: &gallons, Source: VolumeProvided}, nil
	}

	return VolumeFact{TankID: t.ID, Source: VolumeUnavailable}, nil
}

// cubicFeet computes the geometric volume of a complete measurement.
func cubicFeet(m *Measurement) float64 {
	d := m.Dimensions
	switch m.Shape {
	case ShapeRectangular:
		return d[DimLength] * d[DimWidth] * d[DimHeight]
	case ShapeCylindricalVertical:
		r := d[DimDiameter] / 2
		return math.Pi * r * r * d[DimHeight]
	case ShapeCylindricalHorizontal:
		r := d[DimDiameter] / 2
		return math.Pi * r * r * d[DimLength]
	}
	return 0
}

func missingDimensions(m *Measurement, required []Dimension) []Dimension {
	var missing []Dimension
	for _, dim := range required {
		if _, ok := m.Dimensions[dim]; !ok {
			missing = append(missing, dim)
		}
	}
	return missing
}

// RoundGallons rounds a volume to 2 decimal places for output formatting.
// Comparison logic always uses the unrounded value.
func RoundGallons(gallons float64) float64 {
	return math.Round(gallons*100) / 100
}
