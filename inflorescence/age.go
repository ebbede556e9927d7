package inflorescence

import "github.com/npillmayer/floraison"

// Reference ages that AgeDistribution blends towards.
const (
	budAge   = 0.15
	bloomAge = 0.55
)

// ApplyAgeDistribution shifts a pattern's native age. At distribution 0.5
// the age passes through unchanged; towards 0 it blends to a bud age, and
// towards 1 to a bloom age. The result is within [0,1].
func ApplyAgeDistribution(age, distribution float64) float64 {
	d := floraison.Clamp(distribution, 0, 1)
	switch {
	case d < 0.5:
		age = floraison.Lerp(age, budAge, (0.5-d)/0.5)
	case d > 0.5:
		age = floraison.Lerp(age, bloomAge, (d-0.5)/0.5)
	}
	return floraison.Clamp(age, 0, 1)
}

// Stage is a coarse developmental stage of a flower.
type Stage int

// Flower stages, youngest first.
const (
	Bud Stage = iota
	Bloom
	Wilt
)

func (s Stage) String() string {
	switch s {
	case Bud:
		return "bud"
	case Bloom:
		return "bloom"
	}
	return "wilt"
}

// StageOf classifies an age: bud below 0.3, bloom below 0.8, wilt above.
func StageOf(age float64) Stage {
	switch {
	case age < 0.3:
		return Bud
	case age < 0.8:
		return Bloom
	}
	return Wilt
}
