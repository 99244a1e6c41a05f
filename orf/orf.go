package orf

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknown is returned by ByName for an unrecognized function name.
var ErrUnknown = errors.New("orf: unknown overlap reduction function")

// Func evaluates the overlap reduction function for a pulsar pair given
// their unit sky-position vectors.
type Func func(pos1, pos2 [3]float64) float64

// ByName resolves an overlap reduction function by its short name.
// Recognized names are "hd" (Hellings-Downs), "dipole" and "monopole".
func ByName(name string) (Func, error) {
	switch name {
	case "hd":
		return HellingsDowns, nil
	case "dipole":
		return Dipole, nil
	case "monopole":
		return Monopole, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
}

// HellingsDowns returns the Hellings-Downs correlation for an isotropic
// gravitational-wave background:
//
//	x = (1 - cos ξ) / 2
//	Γ(ξ) = 1.5 x ln x - 0.25 x + 0.5
//
// For identical positions the auto-correlation value 1 is returned.
func HellingsDowns(pos1, pos2 [3]float64) float64 {
	if pos1 == pos2 {
		return 1
	}
	x := (1 - dot(pos1, pos2)) / 2
	return 1.5*x*math.Log(x) - 0.25*x + 0.5
}

// Dipole returns the dipole correlation, cos ξ. For identical positions a
// value slightly above 1 is returned to keep the pulsar-term contribution.
func Dipole(pos1, pos2 [3]float64) float64 {
	if pos1 == pos2 {
		return 1 + 1e-5
	}
	return dot(pos1, pos2)
}

// Monopole returns the monopole correlation, which is 1 for every pair. For
// identical positions a value slightly above 1 is returned to keep the
// pulsar-term contribution.
func Monopole(pos1, pos2 [3]float64) float64 {
	if pos1 == pos2 {
		return 1 + 1e-5
	}
	return 1
}

// AngularSeparation returns the angle in radians between two unit vectors.
func AngularSeparation(pos1, pos2 [3]float64) float64 {
	d := dot(pos1, pos2)
	// Guard against |d| drifting past 1 by roundoff.
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d)
}

func dot(p, q [3]float64) float64 {
	return p[0]*q[0] + p[1]*q[1] + p[2]*q[2]
}
