package experiment

import (
	"math/rand/v2"

	apperrors "github.com/agbru/mcsim/internal/errors"
)

// CoinFlip draws a biased coin. A trial is true (heads) with probability
// equal to the bias.
type CoinFlip struct {
	bias float64
}

// NewCoinFlip returns a coin with the given probability of heads.
func NewCoinFlip(bias float64) (CoinFlip, error) {
	if !(bias >= 0 && bias <= 1) {
		return CoinFlip{}, apperrors.NewConfigError("bias %v must be between 0 and 1", bias)
	}
	return CoinFlip{bias: bias}, nil
}

// Bias returns the probability of heads.
func (c CoinFlip) Bias() float64 { return c.bias }

// Produce flips the coin once.
func (c CoinFlip) Produce(rng *rand.Rand) (bool, error) {
	return rng.Float64() < c.bias, nil
}
