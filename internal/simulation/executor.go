package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/logging"
)

const tracerName = "github.com/agbru/mcsim/internal/simulation"

// ErrNilAccumulator is returned when the factory yields a nil accumulator.
var ErrNilAccumulator = errors.New("accumulator factory returned nil")

// Execute runs opts.Trials trials of producer across a pool of opts.Workers
// goroutines and returns the combined, finalized result.
//
// Each worker owns a fresh accumulator from newAcc and its own stream from
// NewStream(opts.Seed, worker) until the pool is joined. The pool is scoped
// to this call: every goroutine has returned by the time Execute returns,
// on success and on failure alike.
//
// When a worker fails (producer or accumulator error, or a panic) the group
// context is canceled, siblings stop at their next batch boundary, and the
// first failure is returned as an apperrors.ExecutionError. Partial results
// are discarded. Cancellation of ctx is observed the same way.
//
// Parameters:
//   - ctx: The context for cancellation and tracing.
//   - producer: The trial producer.
//   - newAcc: The accumulator factory.
//   - opts: The run configuration.
//
// Returns:
//   - Result[R]: The finalized summary and sample count.
//   - error: A ValidationError for bad options, an ExecutionError for a
//     failed run, or the error from combining or finishing accumulators.
func Execute[V, R any](ctx context.Context, producer Producer[V], newAcc Factory[V, R], opts Options) (Result[R], error) {
	var zero Result[R]
	opts, err := opts.normalize()
	if err != nil {
		return zero, err
	}
	if producer == nil {
		return zero, apperrors.ValidationError{Field: "producer", Message: "must not be nil"}
	}
	if newAcc == nil {
		return zero, apperrors.ValidationError{Field: "factory", Message: "must not be nil"}
	}
	chunks, err := Partition(opts.Trials, opts.Workers)
	if err != nil {
		return zero, err
	}

	runID := uuid.NewString()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "simulation.Execute", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.Int64("run.trials", int64(opts.Trials)),
		attribute.Int("run.workers", opts.Workers),
		attribute.Int64("run.seed", opts.Seed),
	))
	defer span.End()

	fields := []logging.Field{
		logging.String("run_id", runID),
		logging.Uint64("trials", opts.Trials),
		logging.Int("workers", opts.Workers),
		logging.Int64("seed", opts.Seed),
	}
	opts.Logger.Debug("simulation started", fields...)
	start := time.Now()

	partials := make([]Accumulator[V, R], len(chunks))
	for i := range partials {
		if partials[i] = newAcc(); partials[i] == nil {
			return zero, ErrNilAccumulator
		}
	}

	tracker := NewTracker(opts.Trials, opts.Reporter)
	g, gctx := errgroup.WithContext(ctx)
	for i, n := range chunks {
		g.Go(func() error {
			opts.Observer.WorkerStarted(i)
			done, err := runWorker(gctx, producer, partials[i], NewStream(opts.Seed, i), n, tracker)
			opts.Observer.WorkerFinished(i, done, err)
			if err != nil {
				return apperrors.ExecutionError{Worker: i, Cause: err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		opts.Logger.Error("simulation failed", err, append(fields, logging.Uint64("completed", tracker.Completed()))...)
		return zero, err
	}
	tracker.Finish()

	res, err := Assemble(newAcc, partials, opts.Trials)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		opts.Logger.Error("simulation aggregation failed", err, fields...)
		return zero, err
	}
	res.RunID = runID
	res.Elapsed = time.Since(start)
	opts.Logger.Info("simulation finished", append(fields, logging.String("elapsed", res.Elapsed.String()))...)
	return res, nil
}

// runWorker is the trial loop of one worker. It returns the number of
// trials it accumulated.
func runWorker[V, R any](ctx context.Context, producer Producer[V], acc Accumulator[V, R], rng *rand.Rand, trials uint64, tracker *Tracker) (done uint64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("trial panicked: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var pending uint64
	for done < trials {
		v, err := producer.Produce(rng)
		if err != nil {
			return done, err
		}
		if err := acc.Accumulate(v); err != nil {
			return done, err
		}
		done++
		if pending++; pending == BatchSize {
			pending = 0
			tracker.Advance(BatchSize)
			if err := ctx.Err(); err != nil {
				return done, err
			}
		}
	}
	tracker.Flush(pending)
	return done, nil
}
