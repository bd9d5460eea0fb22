package experiment

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	apperrors "github.com/agbru/mcsim/internal/errors"
)

// ArtificialThreshold is the mean artificiality score at or above which a
// spectrum is reported as likely artificial.
const ArtificialThreshold = 0.15

// Synthetic spectrum centre and jitter used by Artificiality.
const (
	syntheticSilent   = 0.10
	syntheticMissense = 0.85
	silentJitter      = 0.01
	missenseJitter    = 0.02
)

// Spectrum is the relative frequency of silent, missense and nonsense
// mutations observed in a coding sequence.
type Spectrum struct {
	Silent   float64
	Missense float64
	Nonsense float64
}

// Normalize scales the spectrum to sum to 1.
func (s Spectrum) Normalize() (Spectrum, error) {
	total := s.Silent + s.Missense + s.Nonsense
	if s.Silent < 0 || s.Missense < 0 || s.Nonsense < 0 {
		return Spectrum{}, apperrors.NewConfigError("spectrum parts must not be negative")
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return Spectrum{}, apperrors.NewConfigError("spectrum total %v must be positive", total)
	}
	return Spectrum{Silent: s.Silent / total, Missense: s.Missense / total, Nonsense: s.Nonsense / total}, nil
}

// Spectra are the named reference spectra selectable on the command line.
var Spectra = map[string]Spectrum{
	"covid": {Silent: 0.35, Missense: 0.58, Nonsense: 0.07},
	"flu":   {Silent: 0.21, Missense: 0.75, Nonsense: 0.04},
}

// SpectrumByName looks up a named spectrum.
func SpectrumByName(name string) (Spectrum, error) {
	s, ok := Spectra[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(Spectra))
		for k := range Spectra {
			names = append(names, k)
		}
		slices.Sort(names)
		return Spectrum{}, apperrors.NewConfigError("unknown spectrum %q (available: %s)", name, strings.Join(names, ", "))
	}
	return s, nil
}

// Artificiality scores how far a jittered synthetic mutation spectrum lies
// from a natural one. Each trial returns the L1 distance between the two
// normalized spectra.
type Artificiality struct {
	natural Spectrum
}

// NewArtificiality returns the experiment against the natural spectrum.
func NewArtificiality(natural Spectrum) (Artificiality, error) {
	n, err := natural.Normalize()
	if err != nil {
		return Artificiality{}, err
	}
	return Artificiality{natural: n}, nil
}

// Produce draws one synthetic spectrum and returns its distance.
func (a Artificiality) Produce(rng *rand.Rand) (float64, error) {
	silent := syntheticSilent + uniform(rng, silentJitter)
	missense := syntheticMissense + uniform(rng, missenseJitter)
	nonsense := math.Max(0, 1-silent-missense)

	total := silent + missense + nonsense
	silent /= total
	missense /= total
	nonsense /= total

	return math.Abs(silent-a.natural.Silent) +
		math.Abs(missense-a.natural.Missense) +
		math.Abs(nonsense-a.natural.Nonsense), nil
}

// uniform returns a value in [-r, r).
func uniform(rng *rand.Rand, r float64) float64 {
	return (rng.Float64()*2 - 1) * r
}

// LikelyArtificial reports whether a mean score crosses ArtificialThreshold.
func LikelyArtificial(score float64) bool {
	return score >= ArtificialThreshold
}
