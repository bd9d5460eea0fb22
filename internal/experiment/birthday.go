package experiment

import (
	"math/rand/v2"

	apperrors "github.com/agbru/mcsim/internal/errors"
)

// Birthday scores 1 when at least two members of a random group share a
// birthday.
type Birthday struct {
	group int
	days  int
}

// NewBirthday returns the experiment for groupSize people and a year of
// days days.
func NewBirthday(groupSize, days int) (Birthday, error) {
	if groupSize < 1 {
		return Birthday{}, apperrors.NewConfigError("group size %d must be at least 1", groupSize)
	}
	if days < 1 {
		return Birthday{}, apperrors.NewConfigError("days %d must be at least 1", days)
	}
	return Birthday{group: groupSize, days: days}, nil
}

// Produce draws one group. Memory per trial is bounded by the group size,
// never by the number of days.
func (b Birthday) Produce(rng *rand.Rand) (float64, error) {
	if b.group > b.days {
		return 1, nil
	}
	seen := make(map[int]struct{}, b.group)
	for range b.group {
		d := rng.IntN(b.days)
		if _, dup := seen[d]; dup {
			return 1, nil
		}
		seen[d] = struct{}{}
	}
	return 0, nil
}

// BirthdayProbability returns the exact probability of at least one shared
// birthday among groupSize people over days equally likely days.
func BirthdayProbability(groupSize, days int) float64 {
	if groupSize > days {
		return 1
	}
	distinct := 1.0
	for i := 0; i < groupSize; i++ {
		distinct *= float64(days-i) / float64(days)
	}
	return 1 - distinct
}
