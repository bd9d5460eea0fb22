package aggregate

import (
	"cmp"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/simulation"
)

func TestBooleanMean(t *testing.T) {
	t.Parallel()
	acc := NewBooleanMean()
	for _, v := range []bool{true, false, true, true} {
		if err := acc.Accumulate(v); err != nil {
			t.Fatal(err)
		}
	}
	mv, err := acc.Finish(4)
	if err != nil {
		t.Fatal(err)
	}
	if mv.Mean != 0.75 {
		t.Errorf("Mean = %v, want 0.75", mv.Mean)
	}
	if math.Abs(mv.Variance-0.1875) > 1e-15 {
		t.Errorf("Variance = %v, want 0.1875", mv.Variance)
	}
}

func TestMeanVarianceAcc(t *testing.T) {
	t.Parallel()
	acc := NewMeanVariance()
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		_ = acc.Accumulate(v)
	}
	mv, err := acc.Finish(8)
	if err != nil {
		t.Fatal(err)
	}
	if mv.Mean != 5 || mv.Variance != 4 {
		t.Errorf("got %+v, want mean 5 variance 4", mv)
	}
}

func TestMeanVarianceAccConstantNonNegative(t *testing.T) {
	t.Parallel()
	acc := NewMeanVariance()
	for i := 0; i < 1000; i++ {
		_ = acc.Accumulate(0.1)
	}
	mv, err := acc.Finish(1000)
	if err != nil {
		t.Fatal(err)
	}
	if mv.Variance < 0 {
		t.Errorf("Variance = %v, want >= 0", mv.Variance)
	}
}

func TestFinishEmpty(t *testing.T) {
	t.Parallel()
	if _, err := NewBooleanMean().Finish(0); !errors.Is(err, ErrEmpty) {
		t.Errorf("BooleanMean: error = %v, want ErrEmpty", err)
	}
	if _, err := NewMeanVariance().Finish(0); !errors.Is(err, ErrEmpty) {
		t.Errorf("MeanVarianceAcc: error = %v, want ErrEmpty", err)
	}
	if _, err := NewCounter[string]()().Finish(0); !errors.Is(err, ErrEmpty) {
		t.Errorf("Counter: error = %v, want ErrEmpty", err)
	}
}

// otherBool is a foreign accumulator kind used to exercise Combine checks.
type otherBool struct{ BooleanMean }

func TestCombineIncompatible(t *testing.T) {
	t.Parallel()
	err := NewBooleanMean().Combine(&otherBool{})
	var ie apperrors.IncompatibleAggregatorError
	if !errors.As(err, &ie) {
		t.Fatalf("error = %v, want IncompatibleAggregatorError", err)
	}
	if ie.Want != "*aggregate.BooleanMean" || ie.Got != "*aggregate.otherBool" {
		t.Errorf("got Want=%q Got=%q", ie.Want, ie.Got)
	}
}

func TestCounter(t *testing.T) {
	t.Parallel()
	newAcc := NewCounter[string]()
	a, b := newAcc(), newAcc()
	for _, k := range []string{"x", "y", "x"} {
		_ = a.Accumulate(k)
	}
	_ = b.Accumulate("z")
	_ = b.Accumulate("x")
	if err := a.Combine(b); err != nil {
		t.Fatal(err)
	}
	counts, err := a.Finish(5)
	if err != nil {
		t.Fatal(err)
	}
	if counts.Get("x") != 3 || counts.Get("y") != 1 || counts.Get("z") != 1 || counts.Get("w") != 0 {
		t.Errorf("unexpected counts: x=%d y=%d z=%d", counts.Get("x"), counts.Get("y"), counts.Get("z"))
	}
	if counts.Total() != 5 {
		t.Errorf("Total = %d, want 5", counts.Total())
	}
	if f := counts.Fraction("x"); f != 0.6 {
		t.Errorf("Fraction(x) = %v, want 0.6", f)
	}
	keys := counts.Keys(cmp.Compare[string])
	if len(keys) != 3 || keys[0] != "x" || keys[1] != "y" || keys[2] != "z" {
		t.Errorf("Keys = %v", keys)
	}

	// The snapshot must not alias the accumulator.
	_ = a.Accumulate("y")
	if counts.Get("y") != 1 {
		t.Error("Counts snapshot changed after further accumulation")
	}
}

// combineInOrder distributes values over parts fresh accumulators and
// combines them back into one aggregate in the given order.
func combineInOrder[V, R any](newAcc func() simulation.Accumulator[V, R], values []V, parts int, order []int) (R, error) {
	partials := make([]simulation.Accumulator[V, R], parts)
	for i := range partials {
		partials[i] = newAcc()
	}
	for i, v := range values {
		_ = partials[i%parts].Accumulate(v)
	}
	agg := newAcc()
	for _, idx := range order {
		if err := agg.Combine(partials[idx]); err != nil {
			var zero R
			return zero, err
		}
	}
	return agg.Finish(uint64(len(values)))
}

// orders returns the identity order of parts partials and a shuffle of it.
func orders(parts int, seed uint64) (identity, shuffled []int) {
	identity = make([]int, parts)
	for i := range identity {
		identity[i] = i
	}
	shuffled = append([]int(nil), identity...)
	r := rand.New(rand.NewPCG(seed, 0))
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return identity, shuffled
}

// TestCombinePermutation_PropertyBased checks that combining partials in any
// order gives the same summary, within rounding tolerance for the scalar
// accumulator and exactly for the counting ones.
func TestCombinePermutation_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("mean-variance combine is order independent", prop.ForAll(
		func(values []float64, parts int, seed uint64) bool {
			if len(values) == 0 {
				return true
			}
			identity, shuffled := orders(parts, seed)
			base, err1 := combineInOrder(NewMeanVariance, values, parts, identity)
			other, err2 := combineInOrder(NewMeanVariance, values, parts, shuffled)
			if err1 != nil || err2 != nil {
				return false
			}
			return math.Abs(base.Mean-other.Mean) < 1e-9 &&
				math.Abs(base.Variance-other.Variance) < 1e-6
		},
		gen.SliceOf(gen.Float64Range(-100, 100)),
		gen.IntRange(1, 16),
		gen.UInt64(),
	))

	properties.Property("boolean mean combine is order independent", prop.ForAll(
		func(values []bool, parts int, seed uint64) bool {
			if len(values) == 0 {
				return true
			}
			identity, shuffled := orders(parts, seed)
			base, err1 := combineInOrder(NewBooleanMean, values, parts, identity)
			other, err2 := combineInOrder(NewBooleanMean, values, parts, shuffled)
			return err1 == nil && err2 == nil && base == other
		},
		gen.SliceOf(gen.Bool()),
		gen.IntRange(1, 16),
		gen.UInt64(),
	))

	properties.Property("counter combine is order independent", prop.ForAll(
		func(values []int, parts int, seed uint64) bool {
			if len(values) == 0 {
				return true
			}
			identity, shuffled := orders(parts, seed)
			base, err1 := combineInOrder[int, Counts[int]](NewCounter[int](), values, parts, identity)
			other, err2 := combineInOrder[int, Counts[int]](NewCounter[int](), values, parts, shuffled)
			if err1 != nil || err2 != nil || base.Total() != other.Total() {
				return false
			}
			for k := range 6 {
				if base.Get(k) != other.Get(k) {
					return false
				}
			}
			return base.Total() == uint64(len(values))
		},
		gen.SliceOf(gen.IntRange(0, 5)),
		gen.IntRange(1, 16),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestCombineTypedNil(t *testing.T) {
	t.Parallel()
	var ie apperrors.IncompatibleAggregatorError

	if err := NewBooleanMean().Combine((*BooleanMean)(nil)); !errors.As(err, &ie) {
		t.Errorf("BooleanMean: error = %v, want IncompatibleAggregatorError", err)
	}
	if err := NewMeanVariance().Combine((*MeanVarianceAcc)(nil)); !errors.As(err, &ie) {
		t.Errorf("MeanVarianceAcc: error = %v, want IncompatibleAggregatorError", err)
	}
	if err := NewCounter[string]()().Combine((*Counter[string])(nil)); !errors.As(err, &ie) {
		t.Errorf("Counter: error = %v, want IncompatibleAggregatorError", err)
	}
}

func TestExecuteWithBooleanMean(t *testing.T) {
	t.Parallel()
	producer := simulation.ProducerFunc[bool](func(rng *rand.Rand) (bool, error) {
		return rng.Float64() < 0.25, nil
	})
	res, err := simulation.Execute(t.Context(), producer, NewBooleanMean, simulation.Options{Trials: 200_000, Workers: 4, Seed: 5})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Summary.Mean-0.25) > 0.01 {
		t.Errorf("Mean = %v, want ~0.25", res.Summary.Mean)
	}
}
