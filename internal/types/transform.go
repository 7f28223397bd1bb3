package types

import "math"

// BlockTransform is the blockstate variant's x/y rotation (always a
// multiple of 90 degrees) plus the uvlock flag. It is distinct from
// ElementRotation, which comes from the model JSON itself and can be
// an arbitrary angle about a single axis.
type BlockTransform struct {
	X, Y   int
	UVLock bool
}

func (t BlockTransform) IsIdentity() bool {
	return t.X == 0 && t.Y == 0
}

// RotateDirection applies the variant's x-then-y rotation (in 90 degree
// steps) to a face direction, producing the direction it actually faces
// in world space.
func (t BlockTransform) RotateDirection(d Direction) Direction {
	d = rotateAroundX(d, t.X)
	d = rotateAroundY(d, t.Y)
	return d
}

func rotateAroundX(d Direction, degrees int) Direction {
	steps := normalizeSteps(degrees)
	for i := 0; i < steps; i++ {
		switch d {
		case Up:
			d = North
		case North:
			d = Down
		case Down:
			d = South
		case South:
			d = Up
		}
	}
	return d
}

func rotateAroundY(d Direction, degrees int) Direction {
	steps := normalizeSteps(degrees)
	for i := 0; i < steps; i++ {
		switch d {
		case North:
			d = East
		case East:
			d = South
		case South:
			d = West
		case West:
			d = North
		}
	}
	return d
}

func normalizeSteps(degrees int) int {
	steps := (degrees / 90) % 4
	if steps < 0 {
		steps += 4
	}
	return steps
}

// ElementRotation is the optional per-element rotation block from a
// model JSON: a single angle about one axis, around an arbitrary origin,
// with an optional rescale to keep the rotated element inscribed.
type ElementRotation struct {
	Origin  [3]float32
	Axis    Axis
	Angle   float32
	Rescale bool
}

// NormalizedOrigin converts the origin from 0-16 model-space units to
// the 0..1 unit-cube space elements are built in (the same space
// generateFaceVertices and applyBlockTransform use, centered at 0.5).
func (r ElementRotation) NormalizedOrigin() [3]float32 {
	return [3]float32{
		r.Origin[0] / 16,
		r.Origin[1] / 16,
		r.Origin[2] / 16,
	}
}

func (r ElementRotation) AngleRadians() float64 {
	return float64(r.Angle) * math.Pi / 180.0
}

// RescaleFactor returns the 1/cos(angle) scale to apply to the two
// non-rotation axes when Rescale is set, else 1.
func (r ElementRotation) RescaleFactor() float32 {
	if !r.Rescale {
		return 1.0
	}
	return float32(1.0 / math.Cos(r.AngleRadians()))
}
